package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/activity-board/internal/model"
)

// PostgresStore persists activities and participants in PostgreSQL.
// It uses pgx directly (no ORM).
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a PostgresStore.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Seed inserts seeds that are not present yet. Existing activities and
// their participants are left alone.
func (s *PostgresStore) Seed(ctx context.Context, seeds []Seed) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, seed := range seeds {
		tag, err := tx.Exec(ctx,
			`INSERT INTO activities (name, description, schedule, max_participants)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (name) DO NOTHING`,
			seed.Name, seed.Activity.Description, seed.Activity.Schedule, seed.Activity.MaxParticipants,
		)
		if err != nil {
			return fmt.Errorf("insert activity %q: %w", seed.Name, err)
		}
		if tag.RowsAffected() == 0 {
			continue
		}
		for _, email := range seed.Activity.Participants {
			if err := insertParticipant(ctx, tx, seed.Name, email); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Catalog returns all activities in insertion order with participants in
// signup order.
func (s *PostgresStore) Catalog(ctx context.Context) (*model.Catalog, error) {
	rows, err := s.db.Query(ctx,
		`SELECT name, description, schedule, max_participants
		 FROM activities
		 ORDER BY position ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	catalog := model.NewCatalog()
	for rows.Next() {
		var name string
		a := model.Activity{Participants: []string{}}
		if err := rows.Scan(&name, &a.Description, &a.Schedule, &a.MaxParticipants); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		catalog.Set(name, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	prows, err := s.db.Query(ctx,
		`SELECT activity_name, email
		 FROM participants
		 ORDER BY created_at ASC, seq ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer prows.Close()

	for prows.Next() {
		var activity, email string
		if err := prows.Scan(&activity, &email); err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		a, ok := catalog.Get(activity)
		if !ok {
			continue
		}
		a.Participants = append(a.Participants, email)
		catalog.Set(activity, a)
	}
	return catalog, prows.Err()
}

// AddParticipant enrolls email inside a transaction that holds a row lock
// on the activity, so two concurrent signups cannot both take the last
// spot.
func (s *PostgresStore) AddParticipant(ctx context.Context, activity, email string) (err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var capacity int
	err = tx.QueryRow(ctx,
		`SELECT max_participants
		 FROM activities
		 WHERE name = $1
		 FOR UPDATE`,
		activity,
	).Scan(&capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("lock activity row: %w", err)
	}

	var enrolled, dup int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE email = $2)
		 FROM participants
		 WHERE activity_name = $1`,
		activity, email,
	).Scan(&enrolled, &dup)
	if err != nil {
		return fmt.Errorf("count participants: %w", err)
	}
	if dup > 0 {
		return ErrAlreadySignedUp
	}
	if enrolled >= capacity {
		return ErrActivityFull
	}

	if err = insertParticipant(ctx, tx, activity, email); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RemoveParticipant withdraws email from activity.
func (s *PostgresStore) RemoveParticipant(ctx context.Context, activity, email string) error {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM activities WHERE name = $1)`,
		activity,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check activity: %w", err)
	}
	if !exists {
		return ErrNotFound
	}

	tag, err := s.db.Exec(ctx,
		`DELETE FROM participants WHERE activity_name = $1 AND email = $2`,
		activity, email,
	)
	if err != nil {
		return fmt.Errorf("delete participant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotSignedUp
	}
	return nil
}

func insertParticipant(ctx context.Context, tx pgx.Tx, activity, email string) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO participants (id, activity_name, email, created_at)
		 VALUES ($1, $2, $3, $4)`,
		uuid.New().String(), activity, email, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert participant: %w", err)
	}
	return nil
}
