// Package smoke probes a running signup service end to end: it lists
// activities, signs a generated student up, verifies the roster and
// removes the student again, leaving the instance as it found it.
package smoke

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/logger"
)

// Runner executes the smoke sequence.
type Runner struct {
	cfg    Config
	client *http.Client
	log    logger.Logger
}

// NewRunner builds a Runner; zero-value config fields get defaults.
func NewRunner(cfg Config) *Runner {
	cfg = cfg.withDefaults()
	return &Runner{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    logger.Named("smoke"),
	}
}

// Run executes the full sequence. The first failed step aborts the run.
func (r *Runner) Run(ctx context.Context) error {
	// Probe email is unique per run so repeated runs never collide
	// with real signups or each other.
	email := fmt.Sprintf("smoke-%s@mergington.edu", uuid.NewString()[:8])
	r.log.Info(ctx, "starting smoke run",
		logger.String("baseURL", r.cfg.BaseURL),
		logger.String("activity", r.cfg.Activity),
		logger.String("email", email),
	)

	roster, err := r.fetchRoster(ctx)
	if err != nil {
		return err
	}
	if _, ok := roster[r.cfg.Activity]; !ok {
		return fmt.Errorf("%w: %q not on target instance", ErrActivityMissing, r.cfg.Activity)
	}

	if err := r.signup(ctx, email); err != nil {
		return err
	}

	roster, err = r.fetchRoster(ctx)
	if err != nil {
		return err
	}
	if !roster[r.cfg.Activity].HasParticipant(email) {
		return fmt.Errorf("%w: %s missing after signup", ErrVerification, email)
	}

	// A second signup must be rejected as a duplicate.
	if err := r.expectDuplicate(ctx, email); err != nil {
		return err
	}

	if err := r.remove(ctx, email); err != nil {
		return err
	}

	roster, err = r.fetchRoster(ctx)
	if err != nil {
		return err
	}
	if roster[r.cfg.Activity].HasParticipant(email) {
		return fmt.Errorf("%w: %s still present after removal", ErrVerification, email)
	}

	r.log.Info(ctx, "smoke run passed")
	return nil
}

func (r *Runner) fetchRoster(ctx context.Context) (model.Roster, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.BaseURL+"/activities", nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: list activities returned %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var roster model.Roster
	if err := json.NewDecoder(resp.Body).Decode(&roster); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	return roster, nil
}

func (r *Runner) signupRequest(ctx context.Context, email string) (*http.Response, error) {
	target := fmt.Sprintf("%s/activities/%s/signup?email=%s",
		r.cfg.BaseURL, url.PathEscape(r.cfg.Activity), url.QueryEscape(email))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build signup request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	return resp, nil
}

func (r *Runner) signup(ctx context.Context, email string) error {
	resp, err := r.signupRequest(ctx, email)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: signup returned %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	r.log.Info(ctx, "signed up probe student", logger.String("email", email))
	return nil
}

func (r *Runner) expectDuplicate(ctx context.Context, email string) error {
	resp, err := r.signupRequest(ctx, email)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusBadRequest {
		return fmt.Errorf("%w: duplicate signup returned %d, want 400", ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}

func (r *Runner) remove(ctx context.Context, email string) error {
	target := fmt.Sprintf("%s/activities/%s/participants/%s",
		r.cfg.BaseURL, url.PathEscape(r.cfg.Activity), url.PathEscape(email))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, target, nil)
	if err != nil {
		return fmt.Errorf("build remove request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: remove returned %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	r.log.Info(ctx, "removed probe student", logger.String("email", email))
	return nil
}
