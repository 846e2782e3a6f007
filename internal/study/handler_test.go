package study

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
	sessions map[string]Session
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: map[string]Session{}}
}

func (s *fakeStore) Insert(_ context.Context, sess Session) (Session, error) {
	sess.ID = uuid.NewString()
	sess.CreatedAt = time.Now()
	sess.UpdatedAt = sess.CreatedAt
	s.sessions[sess.ID] = sess
	return sess, nil
}

func (s *fakeStore) List(_ context.Context, userID string, f Filter) ([]Session, error) {
	out := make([]Session, 0)
	for _, sess := range s.sessions {
		if sess.UserID != userID || !f.Range.Contains(sess.Date) {
			continue
		}
		if f.Subject != "" && sess.Subject != f.Subject {
			continue
		}
		out = append(out, sess)
	}
	return out, nil
}

func (s *fakeStore) Get(_ context.Context, userID, id string) (Session, error) {
	sess, ok := s.sessions[id]
	if !ok || sess.UserID != userID {
		return Session{}, ErrNotFound
	}
	return sess, nil
}

func (s *fakeStore) Update(_ context.Context, userID, id string, p Patch) (Session, error) {
	sess, ok := s.sessions[id]
	if !ok || sess.UserID != userID {
		return Session{}, ErrNotFound
	}
	if p.Subject != nil {
		sess.Subject = *p.Subject
	}
	if p.Topic != nil {
		sess.Topic = *p.Topic
	}
	if p.Duration != nil {
		sess.Duration = *p.Duration
	}
	if p.Notes != nil {
		sess.Notes = *p.Notes
	}
	if p.Date != nil {
		sess.Date = *p.Date
	}
	sess.UpdatedAt = time.Now()
	s.sessions[id] = sess
	return sess, nil
}

func (s *fakeStore) Delete(_ context.Context, userID, id string) error {
	sess, ok := s.sessions[id]
	if !ok || sess.UserID != userID {
		return ErrNotFound
	}
	delete(s.sessions, id)
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
	grp := app.Group("/api/study", auth.Middleware(testSecret))
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

func TestCreateSession(t *testing.T) {
	store := newFakeStore()
	app, userID, token := newTestApp(t, store)

	resp := doReq(t, app, "POST", "/api/study/", token, fiber.Map{
		"subject":  "mathematics",
		"topic":    "linear algebra",
		"duration": 2.0,
		"date":     "2024-03-05",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var sess Session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sess))
	assert.Equal(t, userID, sess.UserID)
	assert.Equal(t, "mathematics", sess.Subject)
}

func TestCreateMissingSubject(t *testing.T) {
	app, _, token := newTestApp(t, newFakeStore())

	resp := doReq(t, app, "POST", "/api/study/", token, fiber.Map{
		"date": "2024-03-05",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestListBySubject(t *testing.T) {
	store := newFakeStore()
	app, userID, token := newTestApp(t, store)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, sess := range []Session{
		{UserID: userID, Subject: "mathematics", Date: day},
		{UserID: userID, Subject: "history", Date: day},
	} {
		_, err := store.Insert(context.Background(), sess)
		require.NoError(t, err)
	}

	resp := doReq(t, app, "GET", "/api/study/?subject=history", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var items []Session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "history", items[0].Subject)
}

func TestUpdateTopic(t *testing.T) {
	store := newFakeStore()
	app, userID, token := newTestApp(t, store)

	sess, err := store.Insert(context.Background(), Session{
		UserID: userID, Subject: "mathematics", Topic: "vectors",
		Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	resp := doReq(t, app, "PATCH", "/api/study/"+sess.ID, token, fiber.Map{
		"topic": "matrices",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated Session
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, "matrices", updated.Topic)
	assert.Equal(t, "mathematics", updated.Subject)
}

func TestExportFields(t *testing.T) {
	store := newFakeStore()
	app, userID, token := newTestApp(t, store)

	_, err := store.Insert(context.Background(), Session{
		UserID: userID, Subject: "history", Topic: "mughal empire", Duration: 1.5,
		Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	resp := doReq(t, app, "GET", "/api/study/export", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Count   int    `json:"count"`
		Content string `json:"content"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
	assert.Contains(t, body.Content, "subject: history")
	assert.Contains(t, body.Content, "duration: 1.5h")
}
