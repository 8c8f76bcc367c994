package engine

import (
	"strings"

	"github.com/openfunnel/intentd/internal/profile"
)

// Technologies that correlate with the ideal customer profile. Each overlap
// with the identity's stack is worth 2 fit points, capped at 10.
var relevantTech = []string{
	"kubernetes",
	"prometheus",
	"grafana",
	"terraform",
	"aws",
	"gcp",
	"azure",
	"docker",
}

// FitScore applies additive ICP rules to the identity's profile. A nil
// profile scores 0: no profile is an expected state, not an error.
func FitScore(p *profile.Profile) float64 {
	if p == nil {
		return 0
	}

	var score float64
	if p.EmployeeCount > 100 {
		score += 30
	}
	if p.EmployeeCount > 500 {
		score += 20
	}

	dept := strings.ToLower(p.Department)
	if strings.Contains(dept, "devops") || strings.Contains(dept, "sre") {
		score += 25
	}

	seniority := strings.ToLower(p.Seniority)
	if strings.Contains(seniority, "manager") || strings.Contains(seniority, "director") {
		score += 15
	}

	var overlap float64
	for _, tech := range p.TechnologyStack {
		if relevant(tech) {
			overlap += 2
		}
	}
	if overlap > 10 {
		overlap = 10
	}
	score += overlap

	if score > 100 {
		score = 100
	}
	return score
}

func relevant(tech string) bool {
	lower := strings.ToLower(tech)
	for _, t := range relevantTech {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}
