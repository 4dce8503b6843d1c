// Package repository implements activity storage for the activities API:
// an in-memory store seeded with the school's catalog, and a PostgreSQL
// store built on pgx.
package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/Shivanand-hulikatti/activity-board/internal/model"
)

// ErrNotFound is returned when the named activity does not exist.
var ErrNotFound = errors.New("activity not found")

// ErrAlreadySignedUp is returned when the same email signs up twice.
var ErrAlreadySignedUp = errors.New("student is already signed up")

// ErrNotSignedUp is returned when removing an email that is not enrolled.
var ErrNotSignedUp = errors.New("student is not signed up for this activity")

// ErrActivityFull is returned when an activity has no remaining capacity.
var ErrActivityFull = errors.New("activity is full")

// Seed is one activity of the initial catalog.
type Seed struct {
	Name     string
	Activity model.Activity
}

// DefaultSeed is the catalog both stores start from.
func DefaultSeed() []Seed {
	return []Seed{
		{"Chess Club", model.Activity{
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		}},
		{"Programming Class", model.Activity{
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		}},
		{"Gym Class", model.Activity{
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		}},
		{"Basketball", model.Activity{
			Description:     "Practice drills and play in the inter-school league",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 15,
			Participants:    []string{"liam@mergington.edu"},
		}},
		{"Tennis Club", model.Activity{
			Description:     "Improve your serve and compete in doubles matches",
			Schedule:        "Wednesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 10,
			Participants:    []string{"ava@mergington.edu"},
		}},
		{"Drama Club", model.Activity{
			Description:     "Act, direct and stage the spring school play",
			Schedule:        "Mondays, 4:00 PM - 5:30 PM",
			MaxParticipants: 25,
			Participants:    []string{"mia@mergington.edu", "noah@mergington.edu"},
		}},
		{"Art Studio", model.Activity{
			Description:     "Painting, drawing and mixed media projects",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 18,
			Participants:    []string{},
		}},
		{"Math Club", model.Activity{
			Description:     "Solve challenging problems and prepare for competitions",
			Schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 10,
			Participants:    []string{"james@mergington.edu"},
		}},
		{"Debate Team", model.Activity{
			Description:     "Build public speaking skills and argue current topics",
			Schedule:        "Fridays, 4:00 PM - 5:30 PM",
			MaxParticipants: 12,
			Participants:    []string{"charlotte@mergington.edu", "amelia@mergington.edu"},
		}},
	}
}

// MemoryStore keeps the catalog in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	catalog *model.Catalog
}

// NewMemoryStore constructs a MemoryStore holding seeds.
func NewMemoryStore(seeds []Seed) *MemoryStore {
	c := model.NewCatalog()
	for _, s := range seeds {
		a := s.Activity
		a.Participants = append([]string(nil), a.Participants...)
		c.Set(s.Name, a)
	}
	return &MemoryStore{catalog: c}
}

// Catalog returns a copy of the current catalog.
func (s *MemoryStore) Catalog(ctx context.Context) (*model.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := model.NewCatalog()
	for _, name := range s.catalog.Names() {
		a, _ := s.catalog.Get(name)
		a.Participants = append([]string{}, a.Participants...)
		out.Set(name, a)
	}
	return out, nil
}

// AddParticipant enrolls email in activity.
func (s *MemoryStore) AddParticipant(ctx context.Context, activity, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.catalog.Get(activity)
	if !ok {
		return ErrNotFound
	}
	if a.HasParticipant(email) {
		return ErrAlreadySignedUp
	}
	if a.SpotsLeft() <= 0 {
		return ErrActivityFull
	}
	a.Participants = append(append([]string(nil), a.Participants...), email)
	s.catalog.Set(activity, a)
	return nil
}

// RemoveParticipant withdraws email from activity.
func (s *MemoryStore) RemoveParticipant(ctx context.Context, activity, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.catalog.Get(activity)
	if !ok {
		return ErrNotFound
	}
	kept := make([]string, 0, len(a.Participants))
	for _, p := range a.Participants {
		if p != email {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(a.Participants) {
		return ErrNotSignedUp
	}
	a.Participants = kept
	s.catalog.Set(activity, a)
	return nil
}
