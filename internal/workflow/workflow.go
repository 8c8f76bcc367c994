// Package workflow fires downstream conversion/nurturing workflows when an
// identity crosses an intent threshold. Triggers are fire-and-forget: the
// engine logs failures and never retries, and a slow workflow service is
// bounded by the client timeout rather than blocking the scheduler.
package workflow

import "context"

// Trigger starts downstream workflows for an identity.
type Trigger interface {
	HighIntent(ctx context.Context, identityID string) error
	MediumIntent(ctx context.Context, identityID string) error
}

// Noop discards all triggers. Used when no workflow service is configured.
type Noop struct{}

func (Noop) HighIntent(context.Context, string) error   { return nil }
func (Noop) MediumIntent(context.Context, string) error { return nil }

// Recorder captures triggers in memory for tests.
type Recorder struct {
	High   []string
	Medium []string
}

func (r *Recorder) HighIntent(_ context.Context, identityID string) error {
	r.High = append(r.High, identityID)
	return nil
}

func (r *Recorder) MediumIntent(_ context.Context, identityID string) error {
	r.Medium = append(r.Medium, identityID)
	return nil
}
