package tokenprovider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cateringworks/lunchbot/internal/core/domain"
	"github.com/cateringworks/lunchbot/internal/core/ports"
)

var testScope = ports.Scope{ConversationID: "conv-1", UserID: "user-1"}

func newTestClient(url string) *Client {
	return New(url, "TestConnection", "app-id", "app-secret", zerolog.Nop())
}

func TestClient_BeginReturnsTokenWhenAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/usertoken/GetToken" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("userId"); got != "user-1" {
			t.Errorf("userId = %q", got)
		}
		if got := r.URL.Query().Get("connectionName"); got != "TestConnection" {
			t.Errorf("connectionName = %q", got)
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			t.Errorf("missing bearer credential")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-123"}`))
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL).Begin(context.Background(), testScope)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if result.Token != "tok-123" {
		t.Fatalf("token = %q", result.Token)
	}
	if result.Response != nil {
		t.Fatalf("expected no response envelope alongside a token")
	}
}

func TestClient_BeginReturnsLoginRequestWhenNoToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/usertoken/GetToken":
			w.WriteHeader(http.StatusNotFound)
		case "/api/botsignin/GetSignInUrl":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"signInLink":"https://signin.example/abc"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL).Begin(context.Background(), testScope)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if result.Token != "" {
		t.Fatalf("expected no token, got %q", result.Token)
	}
	if result.Response == nil {
		t.Fatalf("expected a loginRequest envelope")
	}
	if result.Response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("statusCode = %d", result.Response.StatusCode)
	}
	login, ok := result.Response.Value.(domain.LoginRequest)
	if !ok {
		t.Fatalf("value type %T", result.Response.Value)
	}
	if login.LoginURL != "https://signin.example/abc" {
		t.Fatalf("loginUrl = %q", login.LoginURL)
	}
}

func TestClient_BeginFailsOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Begin(context.Background(), testScope); err == nil {
		t.Fatalf("expected error on 500 from token service")
	}
}

func TestClient_SignOut(t *testing.T) {
	var method string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		if r.URL.Path != "/api/usertoken/SignOut" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).SignOut(context.Background(), testScope)
	if err != nil {
		t.Fatalf("signout: %v", err)
	}
	if method != http.MethodDelete {
		t.Fatalf("method = %s", method)
	}
	if resp.Type != domain.ContentTypeMessage {
		t.Fatalf("type = %s", resp.Type)
	}
	text, _ := resp.Value.(string)
	if !strings.Contains(text, "TestConnection") {
		t.Fatalf("message does not name the connection: %q", text)
	}
}
