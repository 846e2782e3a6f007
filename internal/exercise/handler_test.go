package exercise

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
	items map[string]Exercise
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: map[string]Exercise{}}
}

func (s *fakeStore) Insert(_ context.Context, e Exercise) (Exercise, error) {
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	s.items[e.ID] = e
	return e, nil
}

func (s *fakeStore) List(_ context.Context, userID string, f Filter) ([]Exercise, error) {
	out := make([]Exercise, 0)
	for _, e := range s.items {
		if e.UserID != userID || !f.Range.Contains(e.Date) {
			continue
		}
		if f.Done != nil && e.Done != *f.Done {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *fakeStore) Get(_ context.Context, userID, id string) (Exercise, error) {
	e, ok := s.items[id]
	if !ok || e.UserID != userID {
		return Exercise{}, ErrNotFound
	}
	return e, nil
}

func (s *fakeStore) Update(_ context.Context, userID, id string, p Patch) (Exercise, error) {
	e, ok := s.items[id]
	if !ok || e.UserID != userID {
		return Exercise{}, ErrNotFound
	}
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Duration != nil {
		e.Duration = *p.Duration
	}
	if p.Done != nil {
		e.Done = *p.Done
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	e.UpdatedAt = time.Now()
	s.items[id] = e
	return e, nil
}

func (s *fakeStore) Delete(_ context.Context, userID, id string) error {
	e, ok := s.items[id]
	if !ok || e.UserID != userID {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *fakeStore) Toggle(_ context.Context, userID, id string) (Exercise, error) {
	e, ok := s.items[id]
	if !ok || e.UserID != userID {
		return Exercise{}, ErrNotFound
	}
	e.Done = !e.Done
	e.UpdatedAt = time.Now()
	s.items[id] = e
	return e, nil
}

var testSecret = []byte("test-secret")

func newTestApp(t *testing.T, store Store) (*fiber.App, string, string) {
	t.Helper()

	userID := uuid.NewString()
	token, err := auth.GenerateToken(testSecret, userID, time.Hour)
	require.NoError(t, err)

	h := NewHandler(store, t.TempDir())

	app := fiber.New()
	grp := app.Group("/api/exercises", auth.Middleware(testSecret))
	grp.Post("/", h.Create)
	grp.Get("/", h.List)
	grp.Get("/export", h.Export)
	grp.Get("/:id", h.Get)
	grp.Patch("/:id", h.Update)
	grp.Delete("/:id", h.Delete)
	grp.Patch("/:id/toggle", h.Toggle)
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

func TestCreateExercise(t *testing.T) {
	store := newFakeStore()
	app, userID, token := newTestApp(t, store)

	resp := doReq(t, app, "POST", "/api/exercises/", token, fiber.Map{
		"name":     "morning run",
		"category": "cardio",
		"duration": 30.0,
		"date":     "2024-03-05",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var e Exercise
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	assert.Equal(t, userID, e.UserID)
	assert.Equal(t, "cardio", e.Category)
	assert.False(t, e.Done)
}

func TestCreateDefaultsCategory(t *testing.T) {
	store := newFakeStore()
	app, _, token := newTestApp(t, store)

	resp := doReq(t, app, "POST", "/api/exercises/", token, fiber.Map{
		"name": "walk",
		"date": "2024-03-05",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var e Exercise
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	assert.Equal(t, "other", e.Category)
}

func TestToggleFlipsDone(t *testing.T) {
	store := newFakeStore()
	app, userID, token := newTestApp(t, store)

	e, err := store.Insert(context.Background(), Exercise{
		UserID: userID, Name: "pushups",
		Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.False(t, e.Done)

	resp := doReq(t, app, "PATCH", "/api/exercises/"+e.ID+"/toggle", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var toggled Exercise
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&toggled))
	assert.True(t, toggled.Done)

	resp = doReq(t, app, "PATCH", "/api/exercises/"+e.ID+"/toggle", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&toggled))
	assert.False(t, toggled.Done)
}

func TestToggleNotFound(t *testing.T) {
	app, _, token := newTestApp(t, newFakeStore())

	resp := doReq(t, app, "PATCH", "/api/exercises/"+uuid.NewString()+"/toggle", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListDoneFilter(t *testing.T) {
	store := newFakeStore()
	app, userID, token := newTestApp(t, store)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, e := range []Exercise{
		{UserID: userID, Name: "run", Done: true, Date: day},
		{UserID: userID, Name: "swim", Done: false, Date: day},
	} {
		_, err := store.Insert(context.Background(), e)
		require.NoError(t, err)
	}

	resp := doReq(t, app, "GET", "/api/exercises/?done=true", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var items []Exercise
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "run", items[0].Name)
}

func TestListBadDoneFilter(t *testing.T) {
	app, _, token := newTestApp(t, newFakeStore())

	resp := doReq(t, app, "GET", "/api/exercises/?done=maybe", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestExportFields(t *testing.T) {
	store := newFakeStore()
	app, userID, token := newTestApp(t, store)

	_, err := store.Insert(context.Background(), Exercise{
		UserID: userID, Name: "yoga", Category: "flexibility", Duration: 45, Done: true,
		Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	resp := doReq(t, app, "GET", "/api/exercises/export", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Count   int    `json:"count"`
		Content string `json:"content"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
	assert.Contains(t, body.Content, "duration: 45m")
	assert.Contains(t, body.Content, "done: true")
}
