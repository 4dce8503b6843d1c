package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/activity-board/internal/model"
	"github.com/Shivanand-hulikatti/activity-board/internal/repository"
	"github.com/Shivanand-hulikatti/activity-board/internal/service"
)

func newTestRouter() http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewActivityService(repository.NewMemoryStore(repository.DefaultSeed()))
	r := chi.NewRouter()
	r.Use(Logger(log))
	NewActivityHandler(svc, log, "/static/index.html").RegisterRoutes(r)
	return r
}

func do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func decodeCatalog(t *testing.T, rr *httptest.ResponseRecorder) *model.Catalog {
	t.Helper()
	require.Equal(t, http.StatusOK, rr.Code)
	c := model.NewCatalog()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), c))
	return c
}

func TestGetActivities(t *testing.T) {
	rr := do(t, newTestRouter(), http.MethodGet, "/activities")
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	for _, name := range []string{"Chess Club", "Programming Class", "Gym Class"} {
		require.Contains(t, raw, name)
	}
	for name, fields := range raw {
		for _, key := range []string{"description", "schedule", "max_participants", "participants"} {
			assert.Contains(t, fields, key, name)
		}
		assert.IsType(t, []any{}, fields["participants"], name)
	}

	c := decodeCatalog(t, rr)
	assert.Equal(t, "Chess Club", c.Names()[0])
}

func TestSignupForActivity(t *testing.T) {
	r := newTestRouter()

	rr := do(t, r, http.MethodPost, "/activities/Chess%20Club/signup?email=test@example.com")
	require.Equal(t, http.StatusOK, rr.Code)
	var body model.MessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Contains(t, strings.ToLower(body.Message), "signed up")

	chess, _ := decodeCatalog(t, do(t, r, http.MethodGet, "/activities")).Get("Chess Club")
	assert.Contains(t, chess.Participants, "test@example.com")
}

func TestSignupForNonexistentActivity(t *testing.T) {
	rr := do(t, newTestRouter(), http.MethodPost, "/activities/Nonexistent%20Club/signup?email=test@example.com")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Activity not found", body.Detail)
}

func TestSignupDuplicateEmail(t *testing.T) {
	r := newTestRouter()

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/activities/Basketball/signup?email=duplicate@example.com").Code)

	rr := do(t, r, http.MethodPost, "/activities/Basketball/signup?email=duplicate@example.com")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"detail":"Student is already signed up"}`, rr.Body.String())
}

func TestSignupMissingEmail(t *testing.T) {
	rr := do(t, newTestRouter(), http.MethodPost, "/activities/Basketball/signup")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSignupEncodedSlashInName(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repository.NewMemoryStore([]repository.Seed{{Name: "Arts/Crafts", Activity: model.Activity{MaxParticipants: 2}}})
	r := chi.NewRouter()
	NewActivityHandler(service.NewActivityService(store), log, "/").RegisterRoutes(r)

	rr := do(t, r, http.MethodPost, "/activities/Arts%2FCrafts/signup?email=a%40x.com")
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestUnregister(t *testing.T) {
	r := newTestRouter()
	require.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/activities/Drama%20Club/signup?email=remove@example.com").Code)

	rr := do(t, r, http.MethodPost, "/activities/Drama%20Club/unregister?email=remove@example.com")
	require.Equal(t, http.StatusOK, rr.Code)
	var body model.MessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Contains(t, strings.ToLower(body.Message), "unregistered")

	drama, _ := decodeCatalog(t, do(t, r, http.MethodGet, "/activities")).Get("Drama Club")
	assert.NotContains(t, drama.Participants, "remove@example.com")
}

func TestUnregisterErrors(t *testing.T) {
	r := newTestRouter()

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPost, "/activities/Fake%20Club/unregister?email=test@example.com").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodPost, "/activities/Art%20Studio/unregister?email=notsignedup@example.com").Code)
}

func TestRootRedirects(t *testing.T) {
	rr := do(t, newTestRouter(), http.MethodGet, "/")
	assert.Equal(t, http.StatusTemporaryRedirect, rr.Code)
	assert.Contains(t, rr.Header().Get("Location"), "/static/index.html")
}

func TestHealthCheck(t *testing.T) {
	rr := do(t, newTestRouter(), http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	}))
	rr := do(t, h, http.MethodOptions, "/activities")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
