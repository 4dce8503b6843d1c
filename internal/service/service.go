// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the activity store.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Shivanand-hulikatti/activity-board/internal/model"
	"github.com/Shivanand-hulikatti/activity-board/internal/repository"
)

// ErrInvalidEmail is returned when the email query parameter is missing or
// malformed.
var ErrInvalidEmail = errors.New("a valid email is required")

// Store is the persistence the service needs. Both repository stores
// satisfy it.
type Store interface {
	Catalog(ctx context.Context) (*model.Catalog, error)
	AddParticipant(ctx context.Context, activity, email string) error
	RemoveParticipant(ctx context.Context, activity, email string) error
}

var validate = validator.New()

// ActivityService orchestrates catalog reads and enrollment changes.
type ActivityService struct {
	store Store
}

// NewActivityService constructs an ActivityService.
func NewActivityService(store Store) *ActivityService {
	return &ActivityService{store: store}
}

// Catalog returns every activity.
func (s *ActivityService) Catalog(ctx context.Context) (*model.Catalog, error) {
	c, err := s.store.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}

// Signup enrolls email in activity and returns the confirmation message.
func (s *ActivityService) Signup(ctx context.Context, activity, email string) (string, error) {
	email, err := normaliseEmail(email)
	if err != nil {
		return "", err
	}
	if err := s.store.AddParticipant(ctx, activity, email); err != nil {
		// Surface domain errors directly so handlers can set the status.
		if isDomainError(err) {
			return "", err
		}
		return "", fmt.Errorf("signup for %q: %w", activity, err)
	}
	return fmt.Sprintf("Signed up %s for %s", email, activity), nil
}

// Unregister withdraws email from activity and returns the confirmation
// message.
func (s *ActivityService) Unregister(ctx context.Context, activity, email string) (string, error) {
	email, err := normaliseEmail(email)
	if err != nil {
		return "", err
	}
	if err := s.store.RemoveParticipant(ctx, activity, email); err != nil {
		if isDomainError(err) {
			return "", err
		}
		return "", fmt.Errorf("unregister from %q: %w", activity, err)
	}
	return fmt.Sprintf("Unregistered %s from %s", email, activity), nil
}

func normaliseEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return "", ErrInvalidEmail
	}
	return email, nil
}

func isDomainError(err error) bool {
	return errors.Is(err, repository.ErrNotFound) ||
		errors.Is(err, repository.ErrAlreadySignedUp) ||
		errors.Is(err, repository.ErrNotSignedUp) ||
		errors.Is(err, repository.ErrActivityFull)
}
