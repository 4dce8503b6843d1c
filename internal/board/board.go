// Package board implements the activity board: it mirrors the activity
// catalog held by the activities API into a view model, renders that view
// as HTML, and mediates the signup and unregister mutations.
//
// The board is built once at startup and owns the shared rendering targets
// (the activity list and the signup dropdown). The signup form, the message
// region and a pending alert belong to a Session, one per visitor.
// Operations never hold a lock across a network call, so concurrent user
// actions are not serialised against each other: whichever catalog load
// lands last decides the shared regions.
package board

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Shivanand-hulikatti/activity-board/internal/client"
	"github.com/Shivanand-hulikatti/activity-board/internal/metrics"
	"github.com/Shivanand-hulikatti/activity-board/internal/model"
)

// User-facing fixed texts.
const (
	LoadFailedNotice     = "Failed to load activities. Please try again later."
	NoParticipantsText   = "No participants yet"
	GenericSignupError   = "An error occurred"
	SignupTransportError = "Failed to sign up. Please try again."
	UnregisterFailed     = "Failed to unregister participant"
)

// DefaultMessageTimeout is how long a signup message stays visible.
const DefaultMessageTimeout = 5 * time.Second

// API is the subset of the activities API the board consumes.
type API interface {
	Activities(ctx context.Context) (*model.Catalog, error)
	Signup(ctx context.Context, activity, email string) (model.MessageResponse, error)
	Unregister(ctx context.Context, activity, email string) error
}

// RemoveControl is a participant row's removal button. Activating it
// unregisters Email from Activity.
type RemoveControl struct {
	Activity string
	Email    string
}

// ParticipantRow is one entry of a card's participants list.
type ParticipantRow struct {
	Email  string
	Remove RemoveControl
}

// Card is the rendering of one activity.
type Card struct {
	Name         string
	Description  string
	Schedule     string
	SpotsLeft    int
	Participants []ParticipantRow
	// Placeholder replaces the participants list when it is empty.
	Placeholder string
}

// SignupForm holds the signup form's field values.
type SignupForm struct {
	Activity string
	Email    string
}

// View is a snapshot of everything the board renders.
type View struct {
	Cards []Card
	// LoadFailed replaces the activity list with LoadFailedNotice.
	LoadFailed bool
	Options    []string
	Form       SignupForm
	Message    Message
	Alert      string
}

// Board keeps the rendered catalog and the signup dropdown in sync with the
// activities API.
type Board struct {
	api            API
	log            *slog.Logger
	messageTimeout time.Duration
	after          afterFunc

	mu         sync.Mutex
	cards      []Card
	loadFailed bool
	options    []string
}

// Option configures a Board.
type Option func(*options)

type options struct {
	logger         *slog.Logger
	messageTimeout time.Duration
	after          afterFunc
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMessageTimeout sets how long the message region stays visible.
func WithMessageTimeout(d time.Duration) Option {
	return func(o *options) { o.messageTimeout = d }
}

func withAfterFunc(f afterFunc) Option {
	return func(o *options) { o.after = f }
}

// New constructs a Board over api.
func New(api API, opts ...Option) *Board {
	o := options{
		logger:         slog.Default(),
		messageTimeout: DefaultMessageTimeout,
		after:          realAfterFunc,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Board{
		api:            api,
		log:            o.logger,
		messageTimeout: o.messageTimeout,
		after:          o.after,
	}
}

// LoadCatalog fetches the catalog and replaces every card and every
// dropdown option with a fresh rendering. On failure the list area shows
// LoadFailedNotice and the dropdown is left as it was.
func (b *Board) LoadCatalog(ctx context.Context) error {
	catalog, err := b.api.Activities(ctx)
	if err != nil {
		b.log.ErrorContext(ctx, "error fetching activities", "error", err)
		metrics.RecordBoardOperation("load", outcomeOf(err))

		b.mu.Lock()
		b.cards = nil
		b.loadFailed = true
		b.mu.Unlock()
		return err
	}

	names := catalog.Names()
	cards := make([]Card, 0, len(names))
	for _, name := range names {
		a, _ := catalog.Get(name)
		cards = append(cards, renderActivity(name, a))
	}

	b.mu.Lock()
	b.cards = cards
	b.loadFailed = false
	b.options = names
	b.mu.Unlock()

	metrics.RecordBoardOperation("load", metrics.OutcomeSuccess)
	b.log.DebugContext(ctx, "catalog loaded", "activities", len(cards))
	return nil
}

// renderActivity builds the card for one activity.
func renderActivity(name string, a model.Activity) Card {
	card := Card{
		Name:        name,
		Description: a.Description,
		Schedule:    a.Schedule,
		SpotsLeft:   a.SpotsLeft(),
	}
	if len(a.Participants) == 0 {
		card.Placeholder = NoParticipantsText
		return card
	}
	card.Participants = make([]ParticipantRow, 0, len(a.Participants))
	for _, p := range a.Participants {
		card.Participants = append(card.Participants, ParticipantRow{
			Email:  p,
			Remove: RemoveControl{Activity: name, Email: p},
		})
	}
	return card
}

// Signup submits s's signup form for activity and email and reports the
// outcome in s's message region. The catalog is not reloaded afterwards,
// so the new participant only appears on a later page load.
func (b *Board) Signup(ctx context.Context, s *Session, activity, email string) (Message, error) {
	s.setForm(SignupForm{Activity: activity, Email: email})

	resp, err := b.api.Signup(ctx, activity, email)
	var apiErr *client.APIError
	switch {
	case err == nil:
		s.setForm(SignupForm{})
		metrics.RecordBoardOperation("signup", metrics.OutcomeSuccess)
		return s.message.Show(resp.Message, MessageSuccess), nil

	case errors.As(err, &apiErr):
		text := apiErr.Detail
		if text == "" {
			text = GenericSignupError
		}
		metrics.RecordBoardOperation("signup", metrics.OutcomeFailure)
		return s.message.Show(text, MessageError), err

	default:
		b.log.ErrorContext(ctx, "error signing up", "activity", activity, "error", err)
		metrics.RecordBoardOperation("signup", metrics.OutcomeTransport)
		return s.message.Show(SignupTransportError, MessageError), err
	}
}

// Unregister removes email from activity. On success the catalog is
// reloaded at once; on any failure an alert is raised for s and nothing
// reloads.
func (b *Board) Unregister(ctx context.Context, s *Session, activity, email string) error {
	if err := b.api.Unregister(ctx, activity, email); err != nil {
		if !isAPIError(err) {
			b.log.ErrorContext(ctx, "error unregistering", "activity", activity, "error", err)
		}
		metrics.RecordBoardOperation("unregister", outcomeOf(err))

		s.setAlert(UnregisterFailed)
		return err
	}

	metrics.RecordBoardOperation("unregister", metrics.OutcomeSuccess)
	return b.LoadCatalog(ctx)
}

// View returns the shared catalog combined with s's own regions.
func (b *Board) View(s *Session) View {
	return b.snapshot(s, false)
}

// TakeView returns a snapshot and dismisses s's pending alert, which is
// shown exactly once.
func (b *Board) TakeView(s *Session) View {
	return b.snapshot(s, true)
}

func (b *Board) snapshot(s *Session, dismissAlert bool) View {
	b.mu.Lock()
	v := View{
		Cards:      append([]Card(nil), b.cards...),
		LoadFailed: b.loadFailed,
		Options:    append([]string(nil), b.options...),
	}
	b.mu.Unlock()

	s.mu.Lock()
	v.Form = s.form
	v.Alert = s.alert
	if dismissAlert {
		s.alert = ""
	}
	s.mu.Unlock()

	v.Message = s.message.Snapshot()
	return v
}

// MessageTimeout is how long a message stays visible after it is shown.
func (b *Board) MessageTimeout() time.Duration {
	return b.messageTimeout
}

func isAPIError(err error) bool {
	var apiErr *client.APIError
	return errors.As(err, &apiErr)
}

func outcomeOf(err error) string {
	if isAPIError(err) {
		return metrics.OutcomeFailure
	}
	return metrics.OutcomeTransport
}
