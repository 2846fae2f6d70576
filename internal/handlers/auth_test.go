package handlers_test

import (
	"net/http"
	"testing"

	"github.com/abrezinsky/pinplanner/internal/auth"
	"github.com/abrezinsky/pinplanner/internal/handlers"
)

func login(t *testing.T, setup *testSetup) *http.Cookie {
	t.Helper()

	rec := setup.do(t, http.MethodPost, "/api/login", map[string]string{"password": testPassword})
	expectStatus(t, rec, http.StatusOK)

	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("expected session cookie")
	return nil
}

func TestHandleLogin(t *testing.T) {
	setup := newTestSetup(t, testPassword)

	cookie := login(t, setup)
	if !setup.auth.ValidateSession(cookie.Value) {
		t.Error("expected cookie to carry a valid session")
	}
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	setup := newTestSetup(t, testPassword)

	rec := setup.do(t, http.MethodPost, "/api/login", map[string]string{"password": "guess"})
	expectStatus(t, rec, http.StatusUnauthorized)

	if len(rec.Result().Cookies()) != 0 {
		t.Error("expected no cookie on failed login")
	}
}

func TestHandleLogin_Disabled(t *testing.T) {
	setup := newTestSetup(t, "")

	rec := setup.do(t, http.MethodPost, "/api/login", map[string]string{"password": "anything"})
	expectStatus(t, rec, http.StatusOK)
	if len(rec.Result().Cookies()) != 0 {
		t.Error("expected no cookie when auth is disabled")
	}
}

func TestHandleLogout(t *testing.T) {
	setup := newTestSetup(t, testPassword)
	cookie := login(t, setup)

	rec := setup.do(t, http.MethodPost, "/api/logout", nil, cookie)
	expectStatus(t, rec, http.StatusOK)

	if setup.auth.ValidateSession(cookie.Value) {
		t.Error("expected session to be invalidated")
	}
}

func TestHandleAuthStatus(t *testing.T) {
	setup := newTestSetup(t, testPassword)

	var status handlers.AuthStatusResponse
	rec := setup.do(t, http.MethodGet, "/api/auth", nil)
	expectStatus(t, rec, http.StatusOK)
	decodeBody(t, rec, &status)
	if !status.Enabled || status.Authenticated {
		t.Errorf("expected enabled and anonymous, got %+v", status)
	}

	rec = setup.do(t, http.MethodGet, "/api/auth", nil, login(t, setup))
	decodeBody(t, rec, &status)
	if !status.Authenticated {
		t.Errorf("expected authenticated, got %+v", status)
	}
}

func TestProtectedRoutes(t *testing.T) {
	setup := newTestSetup(t, testPassword)
	setup.selectBoard(t, "test_board")

	tests := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodPost, "/api/projects", map[string]string{"name": "Rover"}},
		{http.MethodPost, "/api/projects/import", `{"boardId":"test_board","assignments":[]}`},
		{http.MethodDelete, "/api/projects/any", nil},
		{http.MethodPut, "/api/settings", map[string]string{"base_url": "http://example.test"}},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := setup.do(t, tt.method, tt.path, tt.body)
			expectStatus(t, rec, http.StatusUnauthorized)
		})
	}

	cookie := login(t, setup)
	rec := setup.do(t, http.MethodPost, "/api/projects", map[string]string{"name": "Rover"}, cookie)
	expectStatus(t, rec, http.StatusCreated)
}

func TestSessionRoutesStayOpen(t *testing.T) {
	setup := newTestSetup(t, testPassword)

	rec := setup.do(t, http.MethodPut, "/api/session/board", map[string]string{"board_id": "test_board"})
	expectStatus(t, rec, http.StatusOK)

	rec = setup.do(t, http.MethodPost, "/api/session/placements", placement{"component_id": "led", "pin_index": 1})
	expectStatus(t, rec, http.StatusCreated)

	rec = setup.do(t, http.MethodGet, "/api/projects", nil)
	expectStatus(t, rec, http.StatusOK)
}
