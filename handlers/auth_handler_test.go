package handlers_test

import (
	"net/http"
	"testing"
)

func TestRegisterRejectsShortUsername(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"username":  "ab",
		"password":  "secret1",
		"firstName": "Too",
		"lastName":  "Short",
		"email":     "ab@example.com",
	}, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var body map[string]interface{}
	decode(t, resp, &body)
	details, ok := body["details"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected field details in response, got %v", body)
	}
	if _, ok := details["Username"]; !ok {
		t.Errorf("expected Username among failing fields, got %v", details)
	}
}

func TestRegisterReportsEveryFailingField(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"username": "ab",
		"password": "123",
		"email":    "not-an-email",
	}, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var body map[string]interface{}
	decode(t, resp, &body)
	details, _ := body["details"].(map[string]interface{})
	for _, field := range []string{"Username", "Password", "Email", "FirstName", "LastName"} {
		if _, ok := details[field]; !ok {
			t.Errorf("expected %s among failing fields, got %v", field, details)
		}
	}
}

func TestRegisterSucceedsAndOmitsPassword(t *testing.T) {
	env := newTestEnv(t)

	cookie, user := env.registerUser(t, "abc", "learner")
	if cookie == "" {
		t.Fatal("expected a session cookie after registration")
	}
	if user["username"] != "abc" {
		t.Errorf("expected username abc, got %v", user["username"])
	}
	if user["role"] != "learner" {
		t.Errorf("expected role learner, got %v", user["role"])
	}
	if _, ok := user["password"]; ok {
		t.Error("password must never appear in responses")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "taken", "learner")

	resp := env.request(t, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"username":  "TAKEN",
		"password":  "secret1",
		"firstName": "Copy",
		"lastName":  "Cat",
		"email":     "copy@example.com",
	}, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate username, got %d", resp.StatusCode)
	}
}

func TestLoginFlow(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "frida", "teacher")

	resp := env.request(t, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"username": "frida",
		"password": "wrong-password",
	}, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", resp.StatusCode)
	}

	// Username lookup is case-insensitive.
	resp = env.request(t, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"username": "FRIDA",
		"password": "secret1",
	}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 login, got %d", resp.StatusCode)
	}
	cookie := sessionCookie(t, resp)

	resp = env.request(t, http.MethodGet, "/api/auth/user", nil, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from /api/auth/user, got %d", resp.StatusCode)
	}
	var user map[string]interface{}
	decode(t, resp, &user)
	if user["username"] != "frida" {
		t.Errorf("expected principal frida, got %v", user["username"])
	}

	resp = env.request(t, http.MethodPost, "/api/auth/logout", nil, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 logout, got %d", resp.StatusCode)
	}

	resp = env.request(t, http.MethodGet, "/api/auth/user", nil, cookie)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", resp.StatusCode)
	}
}

func TestCurrentUserRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/auth/user", nil, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", resp.StatusCode)
	}
}
