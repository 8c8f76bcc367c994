// Package profile reads firmographic facts about an identity from the
// external profile collaborator. The engine only consumes these facts when
// computing fit; it never writes them.
package profile

import "context"

// Profile is the firmographic/demographic snapshot for one identity.
type Profile struct {
	EmployeeCount   int      `json:"employee_count"`
	Department      string   `json:"department"`
	Seniority       string   `json:"seniority"`
	TechnologyStack []string `json:"technology_stack"`
}

// Source looks up an identity's profile. A nil profile with a nil error means
// no profile exists, which is an expected state, not a failure.
type Source interface {
	GetProfile(ctx context.Context, identityID string) (*Profile, error)
}

// Static serves profiles from a fixed map. Used in tests and in single-binary
// deployments that load profiles at startup.
type Static struct {
	Profiles map[string]Profile
}

// GetProfile implements Source.
func (s *Static) GetProfile(_ context.Context, identityID string) (*Profile, error) {
	if s == nil || s.Profiles == nil {
		return nil, nil
	}
	p, ok := s.Profiles[identityID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}
