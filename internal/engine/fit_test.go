package engine

import (
	"testing"

	"github.com/openfunnel/intentd/internal/profile"
)

func TestFitScoreNoProfile(t *testing.T) {
	if got := FitScore(nil); got != 0 {
		t.Errorf("fit with no profile = %f, want 0", got)
	}
}

func TestFitScoreAdditiveRules(t *testing.T) {
	cases := []struct {
		name string
		p    profile.Profile
		want float64
	}{
		{
			name: "ideal customer",
			p: profile.Profile{
				EmployeeCount:   800,
				Department:      "DevOps",
				Seniority:       "Engineering Manager",
				TechnologyStack: []string{"Kubernetes", "Prometheus", "Terraform", "AWS", "Docker"},
			},
			want: 100, // 30+20+25+15+10
		},
		{
			name: "mid-size company only",
			p:    profile.Profile{EmployeeCount: 200},
			want: 30,
		},
		{
			name: "sre director small shop",
			p: profile.Profile{
				EmployeeCount: 40,
				Department:    "SRE",
				Seniority:     "Director of Infrastructure",
			},
			want: 40, // 25+15
		},
		{
			name: "irrelevant profile",
			p: profile.Profile{
				EmployeeCount:   10,
				Department:      "Marketing",
				Seniority:       "Intern",
				TechnologyStack: []string{"Excel"},
			},
			want: 0,
		},
	}

	for _, tc := range cases {
		if got := FitScore(&tc.p); got != tc.want {
			t.Errorf("%s: fit = %f, want %f", tc.name, got, tc.want)
		}
	}
}

func TestFitScoreTechOverlapCapped(t *testing.T) {
	p := profile.Profile{
		TechnologyStack: []string{
			"kubernetes", "prometheus", "grafana", "terraform",
			"aws", "gcp", "azure", "docker",
		},
	}
	// 8 matches × 2 = 16, capped at 10
	if got := FitScore(&p); got != 10 {
		t.Errorf("fit = %f, want 10 (tech overlap cap)", got)
	}
}
