package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskmanager/internal/service"
)

func doJSON(r http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

func TestSignUpHandler(t *testing.T) {
	auth := &mockAuth{signUpUser: testUser(), signUpToken: "tok123"}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doJSON(r, http.MethodPost, "/users", `{"name":"Mike","email":"mike@x.com","password":"longpass1"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	var body struct {
		User  map[string]any `json:"user"`
		Token string         `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Token != "tok123" {
		t.Fatalf("expected token tok123, got %q", body.Token)
	}
	if body.User["email"] != "mike@x.com" {
		t.Fatalf("unexpected user: %v", body.User)
	}
	// The password hash must never serialize out.
	if _, leaked := body.User["password"]; leaked {
		t.Fatalf("password leaked in response: %v", body.User)
	}
	if _, leaked := body.User["password_hash"]; leaked {
		t.Fatalf("password hash leaked in response: %v", body.User)
	}
	if auth.lastSignUp.Email != "mike@x.com" {
		t.Fatalf("service got %q", auth.lastSignUp.Email)
	}
}

func TestSignUpHandler_Failures(t *testing.T) {
	cases := []struct {
		name string
		body string
		err  error
		want int
	}{
		{name: "missing fields", body: `{"name":"Mike"}`, want: http.StatusBadRequest},
		{name: "malformed email", body: `{"name":"Mike","email":"nope","password":"longpass1"}`, want: http.StatusBadRequest},
		{name: "duplicate email", body: `{"name":"Mike","email":"mike@x.com","password":"longpass1"}`, err: service.ErrEmailTaken, want: http.StatusBadRequest},
		{name: "weak password", body: `{"name":"Mike","email":"mike@x.com","password":"password1"}`, err: service.ErrValidation, want: http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{signUpErr: tc.err}
			r := newTestRouter(&service.Service{Authorization: auth})

			w := doJSON(r, http.MethodPost, "/users", tc.body, nil)
			if w.Code != tc.want {
				t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		auth := &mockAuth{loginUser: testUser(), loginToken: "tok456"}
		r := newTestRouter(&service.Service{Authorization: auth})

		w := doJSON(r, http.MethodPost, "/users/login", `{"email":"mike@x.com","password":"longpass1"}`, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["token"] != "tok456" {
			t.Fatalf("expected token tok456, got %v", body["token"])
		}
	})

	t.Run("bad credentials are a 400, not a 401", func(t *testing.T) {
		auth := &mockAuth{loginErr: service.ErrInvalidCredentials}
		r := newTestRouter(&service.Service{Authorization: auth})

		w := doJSON(r, http.MethodPost, "/users/login", `{"email":"mike@x.com","password":"wrong"}`, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
	})
}

func TestLogoutHandlers(t *testing.T) {
	auth := &mockAuth{authUser: testUser()}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := doJSON(r, http.MethodPost, "/users/logout", "", authHeader("current-token"))
	if w.Code != http.StatusOK {
		t.Fatalf("logout status=%d, body=%s", w.Code, w.Body.String())
	}
	if auth.lastLogoutToken != "current-token" {
		t.Fatalf("expected the presented token to be revoked, got %q", auth.lastLogoutToken)
	}

	w = doJSON(r, http.MethodPost, "/users/logoutall", "", authHeader("current-token"))
	if w.Code != http.StatusOK {
		t.Fatalf("logoutall status=%d, body=%s", w.Code, w.Body.String())
	}
	if auth.logoutAllCalls != 1 {
		t.Fatalf("expected one LogoutAll call, got %d", auth.logoutAllCalls)
	}
}
