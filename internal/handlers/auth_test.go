package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lostfound/internal/models"
	"lostfound/internal/service"
)

func decodeEnvelope(t *testing.T, body []byte) apiResponse {
	t.Helper()
	var env apiResponse
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, body)
	}
	return env
}

func postJSON(router http.Handler, path, body string, header http.Header) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterHandler(t *testing.T) {
	auth := &mockAuth{registerUser: models.User{ID: 42, Email: "a@x.com", Username: "alice", Name: "Alice"}}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postJSON(r, "/users/register",
		`{"email":"a@x.com","password":"secret1","username":"alice","name":"Alice","number":"111"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w.Body.Bytes())
	if !env.Success || env.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	data := env.Data.(map[string]any)
	if int(data["id"].(float64)) != 42 {
		t.Fatalf("expected id=42, got %v", data["id"])
	}
	if _, leaked := data["password_hash"]; leaked {
		t.Fatalf("hash must not be serialized")
	}
	if auth.lastRegister.Number != "111" {
		t.Fatalf("number not forwarded: %+v", auth.lastRegister)
	}

	// missing required field → 400 before the service is called
	w = postJSON(r, "/users/register", `{"email":"a@x.com","password":"p","name":"A"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing username, got %d", w.Code)
	}
	if env := decodeEnvelope(t, w.Body.Bytes()); env.Success {
		t.Fatalf("error envelope must not be successful: %+v", env)
	}

	// conflict surfaces as 409
	auth.registerErr = service.ErrConflict
	w = postJSON(r, "/users/register",
		`{"email":"a@x.com","password":"p","username":"other","name":"A"}`, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestLoginHandler_SetsCookies(t *testing.T) {
	auth := &mockAuth{
		loginUser: models.User{ID: 7, Email: "a@x.com"},
		loginPair: service.TokenPair{AccessToken: "acc123", RefreshToken: "ref456"},
	}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postJSON(r, "/users/login", `{"email":"a@x.com","password":"secret1"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	cookies := w.Result().Cookies()
	var gotAccess, gotRefresh bool
	for _, ck := range cookies {
		switch ck.Name {
		case accessCookieName:
			gotAccess = ck.Value == "acc123" && ck.HttpOnly
		case refreshCookieName:
			gotRefresh = ck.Value == "ref456" && ck.HttpOnly
		}
	}
	if !gotAccess || !gotRefresh {
		t.Fatalf("expected http-only auth cookies, got %v", cookies)
	}

	// bad credentials → 401 envelope, no cookies
	auth.loginErr = service.ErrInvalidCredentials
	w = postJSON(r, "/users/login", `{"email":"a@x.com","password":"nope"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Fatalf("no cookies on failed login")
	}
}

func TestLogoutHandler_Idempotent(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	r := newTestRouter(&service.Service{Authorization: auth})

	header := http.Header{}
	header.Set("Authorization", "Bearer tok")

	for i := 0; i < 2; i++ {
		w := postJSON(r, "/users/logout", ``, header)
		if w.Code != http.StatusOK {
			t.Fatalf("logout call %d: status=%d body=%s", i+1, w.Code, w.Body.String())
		}
	}
	if auth.logoutCalls != 2 {
		t.Fatalf("expected 2 logout calls, got %d", auth.logoutCalls)
	}
}

func TestRefreshHandler(t *testing.T) {
	auth := &mockAuth{refreshPair: service.TokenPair{AccessToken: "a2", RefreshToken: "r2"}}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postJSON(r, "/users/refresh-token", `{"refreshToken":"r1"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w.Body.Bytes())
	data := env.Data.(map[string]any)
	if data["accessToken"] != "a2" {
		t.Fatalf("expected rotated access token, got %v", data)
	}

	auth.refreshErr = service.ErrUnauthorized
	w = postJSON(r, "/users/refresh-token", `{"refreshToken":"stale"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
