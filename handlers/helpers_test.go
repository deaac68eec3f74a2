package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/skillshare/skillshare_hub/handlers"
	"github.com/skillshare/skillshare_hub/middleware"
	"github.com/skillshare/skillshare_hub/routes"
	"github.com/skillshare/skillshare_hub/storage"
)

type testEnv struct {
	app   *fiber.App
	store *storage.MemoryStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := storage.NewMemoryStorage()
	sessions := session.New()
	h := handlers.New(store, sessions)
	auth := middleware.NewAuth(sessions, store)

	app := fiber.New()
	routes.AuthRoutes(app, h, auth)
	routes.SessionRoutes(app, h, auth)
	routes.BookingRoutes(app, h, auth)

	return &testEnv{app: app, store: store}
}

func (e *testEnv) request(t *testing.T, method, path string, body interface{}, cookie string) *http.Response {
	t.Helper()

	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func sessionCookie(t *testing.T, resp *http.Response) string {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("no session cookie in response")
	return ""
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// registerUser signs up a user through the API and returns the logged-in
// session cookie plus the decoded response body.
func (e *testEnv) registerUser(t *testing.T, username, role string) (string, map[string]interface{}) {
	t.Helper()

	resp := e.request(t, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"username":  username,
		"password":  "secret1",
		"firstName": "Test",
		"lastName":  username,
		"email":     username + "@example.com",
		"role":      role,
	}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d", username, resp.StatusCode)
	}

	cookie := sessionCookie(t, resp)
	var user map[string]interface{}
	decode(t, resp, &user)
	return cookie, user
}

func (e *testEnv) createSession(t *testing.T, cookie, title, date string, capacity int) map[string]interface{} {
	t.Helper()

	resp := e.request(t, http.MethodPost, "/api/sessions", map[string]interface{}{
		"title":         title,
		"skillCategory": "programming",
		"description":   "A detailed description of " + title,
		"date":          date,
		"duration":      1.5,
		"capacity":      capacity,
	}, cookie)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create session %q: expected 201, got %d", title, resp.StatusCode)
	}

	var session map[string]interface{}
	decode(t, resp, &session)
	return session
}
