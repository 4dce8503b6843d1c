package board

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one browser's share of the board: its signup form, its
// message region and its pending alert. The catalog itself is shared.
type Session struct {
	message *messageRegion

	mu       sync.Mutex
	form     SignupForm
	alert    string
	settled  bool
	lastSeen time.Time
}

// NewSession returns a session whose message region uses the board's
// timeout.
func (b *Board) NewSession() *Session {
	return &Session{message: newMessageRegion(b.messageTimeout, b.after)}
}

func (s *Session) setForm(f SignupForm) {
	s.mu.Lock()
	s.form = f
	s.mu.Unlock()
}

func (s *Session) setAlert(text string) {
	s.mu.Lock()
	s.alert = text
	s.mu.Unlock()
}

// Settle marks the session's next page load as the continuation of an
// action that has already brought the view up to date, so that load
// renders without fetching the catalog again.
func (s *Session) Settle() {
	s.mu.Lock()
	s.settled = true
	s.mu.Unlock()
}

// takeSettled reports and clears the Settle mark.
func (s *Session) takeSettled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	settled := s.settled
	s.settled = false
	return settled
}

// Close stops the session's message timer.
func (s *Session) Close() {
	s.message.Close()
}

// sessionStore keys sessions by an opaque id carried in a cookie. Sessions
// idle for longer than ttl are dropped when a new one is created.
type sessionStore struct {
	mu    sync.Mutex
	byID  map[string]*Session
	ttl   time.Duration
	now   func() time.Time
	spawn func() *Session
}

func newSessionStore(ttl time.Duration, spawn func() *Session) *sessionStore {
	return &sessionStore{
		byID:  make(map[string]*Session),
		ttl:   ttl,
		now:   time.Now,
		spawn: spawn,
	}
}

func (st *sessionStore) get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.byID[id]
	if !ok {
		return nil, false
	}
	s.lastSeen = st.now()
	return s, true
}

func (st *sessionStore) create() (string, *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	for id, s := range st.byID {
		if now.Sub(s.lastSeen) > st.ttl {
			s.Close()
			delete(st.byID, id)
		}
	}

	id := uuid.NewString()
	s := st.spawn()
	s.lastSeen = now
	st.byID[id] = s
	return id, s
}

func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.byID)
}

func (st *sessionStore) close() {
	st.mu.Lock()
	defer st.mu.Unlock()
	for id, s := range st.byID {
		s.Close()
		delete(st.byID, id)
	}
}
