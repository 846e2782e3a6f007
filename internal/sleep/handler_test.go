package sleep

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunsachdeva/lifetrack-backend/internal/auth"
)

type fakeStore struct {
	logs map[string]Log
}

func newFakeStore() *fakeStore {
	return &fakeStore{logs: map[string]Log{}}
}

func (s *fakeStore) Insert(_ context.Context, l Log) (Log, error) {
	l.ID = uuid.NewString()
	l.CreatedAt = time.Now()
	l.UpdatedAt = l.CreatedAt
	s.logs[l.ID] = l
	return l, nil
}

func (s *fakeStore) List(_ context.Context, userID string, f Filter) ([]Log, error) {
	out := make([]Log, 0)
	for _, l := range s.logs {
		if l.UserID == userID && f.Range.Contains(l.Day) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *fakeStore) Get(_ context.Context, userID, id string) (Log, error) {
	l, ok := s.logs[id]
	if !ok || l.UserID != userID {
		return Log{}, ErrNotFound
	}
	return l, nil
}

func (s *fakeStore) Update(_ context.Context, userID, id string, p Patch) (Log, error) {
	l, ok := s.logs[id]
	if !ok || l.UserID != userID {
		return Log{}, ErrNotFound
	}
	if p.Day != nil {
		l.Day = *p.Day
	}
	if p.Duration != nil {
		l.Duration = *p.Duration
	}
	if p.Quality != nil {
		l.Quality = *p.Quality
	}
	if p.Notes != nil {
		l.Notes = *p.Notes
	}
	l.UpdatedAt = time.Now()
	s.logs[id] = l
	return l, nil
}

func (s *fakeStore) Delete(_ context.Context, userID, id string) error {
	l, ok := s.logs[id]
	if !ok || l.UserID != userID {
		return ErrNotFound
	}
	delete(s.logs, id)
	return nil
}

var testSecret = []byte("test-secret")

func newTestApp(t *testing.T, store Store) (*fiber.App, string, string) {
	t.Helper()

	userID := uuid.NewString()
	token, err := auth.GenerateToken(testSecret, userID, time.Hour)
	require.NoError(t, err)

	h := NewHandler(store, t.TempDir())

	app := fiber.New()
	grp := app.Group("/api/sleep", auth.Middleware(testSecret))
	grp.Post("/", h.Create)
	grp.Get("/", h.List)
	grp.Get("/export", h.Export)
	grp.Get("/:id", h.Get)
	grp.Patch("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
	return app, userID, token
}

func doReq(t *testing.T, app *fiber.App, method, path, token string, payload any) *http.Response {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	if payload != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateLogDefaultsQuality(t *testing.T) {
	store := newFakeStore()
	app, userID, token := newTestApp(t, store)

	resp := doReq(t, app, "POST", "/api/sleep/", token, fiber.Map{
		"day":      "2024-03-05",
		"duration": 7.5,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var l Log
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&l))
	assert.Equal(t, userID, l.UserID)
	assert.Equal(t, "fair", l.Quality)
	assert.Equal(t, 7.5, l.Duration)
}

func TestCreateBadQuality(t *testing.T) {
	app, _, token := newTestApp(t, newFakeStore())

	resp := doReq(t, app, "POST", "/api/sleep/", token, fiber.Map{
		"day":     "2024-03-05",
		"quality": "amazing",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListByRange(t *testing.T) {
	store := newFakeStore()
	app, userID, token := newTestApp(t, store)

	for _, l := range []Log{
		{UserID: userID, Day: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Duration: 8},
		{UserID: userID, Day: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), Duration: 6},
	} {
		_, err := store.Insert(context.Background(), l)
		require.NoError(t, err)
	}

	resp := doReq(t, app, "GET", "/api/sleep/?start=2024-03-01&end=2024-03-31", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var items []Log
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, 8.0, items[0].Duration)
}

func TestUpdateQuality(t *testing.T) {
	store := newFakeStore()
	app, userID, token := newTestApp(t, store)

	l, err := store.Insert(context.Background(), Log{
		UserID: userID, Day: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Duration: 8, Quality: "fair",
	})
	require.NoError(t, err)

	resp := doReq(t, app, "PATCH", "/api/sleep/"+l.ID, token, fiber.Map{
		"quality": "excellent",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated Log
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, "excellent", updated.Quality)
	assert.Equal(t, 8.0, updated.Duration)
}

func TestExportFields(t *testing.T) {
	store := newFakeStore()
	app, userID, token := newTestApp(t, store)

	_, err := store.Insert(context.Background(), Log{
		UserID: userID, Day: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Duration: 7.5, Quality: "good",
	})
	require.NoError(t, err)

	resp := doReq(t, app, "GET", "/api/sleep/export", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Count   int    `json:"count"`
		Content string `json:"content"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
	assert.Contains(t, body.Content, "duration: 7.5h")
	assert.Contains(t, body.Content, "quality: good")
}
