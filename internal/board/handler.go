package board

import (
	"bytes"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// SessionCookie names the cookie that ties a browser to its Session.
const SessionCookie = "board_session"

const sessionIdleTimeout = 30 * time.Minute

// Handler serves the board page and turns form submissions into board
// operations. Each submission answers with 303 See Other back to the page,
// which then renders the outcome for the submitting visitor only.
type Handler struct {
	board    *Board
	log      *slog.Logger
	sessions *sessionStore
}

// NewHandler constructs a Handler.
func NewHandler(b *Board, log *slog.Logger) *Handler {
	return &Handler{
		board:    b,
		log:      log,
		sessions: newSessionStore(sessionIdleTimeout, b.NewSession),
	}
}

// RegisterRoutes mounts the board's routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Page)
	r.Post("/signup", h.Signup)
	r.Post("/unregister", h.Unregister)

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
}

// Page handles GET /. A page load fetches the catalog, then renders,
// unless it follows a submission that already settled the view.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if !s.takeSettled() {
		// The failure is already reflected in the view.
		_ = h.board.LoadCatalog(r.Context())
	}
	h.render(w, s)
}

// Signup handles POST /signup with form fields activity and email.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	s := h.session(w, r)
	_, _ = h.board.Signup(r.Context(), s, r.PostForm.Get("activity"), r.PostForm.Get("email"))
	s.Settle()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Unregister handles POST /unregister with form fields activity and email.
func (h *Handler) Unregister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	s := h.session(w, r)
	_ = h.board.Unregister(r.Context(), s, r.PostForm.Get("activity"), r.PostForm.Get("email"))
	s.Settle()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Close stops every session's message timer.
func (h *Handler) Close() {
	h.sessions.close()
}

// session returns the caller's Session, starting a new one and setting its
// cookie when the request carries none or an expired one.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *Session {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if s, ok := h.sessions.get(c.Value); ok {
			return s
		}
	}

	id, s := h.sessions.create()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

func (h *Handler) render(w http.ResponseWriter, s *Session) {
	var buf bytes.Buffer
	if err := Render(&buf, h.board.TakeView(s), h.board.MessageTimeout()); err != nil {
		h.log.Error("render board", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}
