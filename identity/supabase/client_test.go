package supabase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vibetrip/vibetrip-api/identity"
	"github.com/vibetrip/vibetrip-api/identity/supabase"
)

func newTestClient(t *testing.T, handler http.Handler) (*supabase.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := supabase.NewClient(supabase.Config{
		URL:     srv.URL,
		AnonKey: "anon-key",
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client, srv
}

func TestUserFromToken_Success(t *testing.T) {
	var gotPath, gotAPIKey, gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    "user-123",
			"email": "trip@example.com",
		})
	}))

	user, err := client.UserFromToken(context.Background(), "access-token")
	if err != nil {
		t.Fatalf("UserFromToken failed: %v", err)
	}
	if user.ID != "user-123" {
		t.Errorf("expected user-123, got %s", user.ID)
	}
	if gotPath != "/auth/v1/user" {
		t.Errorf("expected /auth/v1/user, got %s", gotPath)
	}
	if gotAPIKey != "anon-key" {
		t.Errorf("expected apikey header, got %q", gotAPIKey)
	}
	if gotAuth != "Bearer access-token" {
		t.Errorf("expected bearer auth, got %q", gotAuth)
	}
}

func TestUserFromToken_ProviderRejects(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))
	}))

	_, err := client.UserFromToken(context.Background(), "bad-token")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !strings.Contains(err.Error(), "invalid JWT") {
		t.Errorf("expected provider message in error, got %v", err)
	}
}

func TestUserFromToken_EmptyUser(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))

	if _, err := client.UserFromToken(context.Background(), "token"); err == nil {
		t.Fatal("expected error when the provider reports no user")
	}
}

func TestUserFromToken_Unreachable(t *testing.T) {
	client, srv := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	if _, err := client.UserFromToken(context.Background(), "token"); err == nil {
		t.Fatal("expected error when the provider is unreachable")
	}
}

func TestSignUp(t *testing.T) {
	var gotBody map[string]any
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/signup" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "at",
			"token_type":   "bearer",
			"user":         map[string]any{"id": "new-user"},
		})
	}))

	session, err := client.SignUp(context.Background(), identity.SignUpParams{
		Email:    "trip@example.com",
		Password: "hunter22",
		Data:     map[string]any{"username": "trip"},
	})
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if session.User.ID != "new-user" {
		t.Errorf("expected new-user, got %s", session.User.ID)
	}
	if gotBody["email"] != "trip@example.com" {
		t.Errorf("unexpected request body: %v", gotBody)
	}
	if data, ok := gotBody["data"].(map[string]any); !ok || data["username"] != "trip" {
		t.Errorf("metadata not forwarded: %v", gotBody["data"])
	}
}

func TestSignUp_ConfirmationPendingShape(t *testing.T) {
	// With email confirmation enabled the provider returns the bare user
	// object instead of a session.
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "pending-user", "email": "p@example.com"})
	}))

	session, err := client.SignUp(context.Background(), identity.SignUpParams{
		Email: "p@example.com", Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	if session.User == nil || session.User.ID != "pending-user" {
		t.Errorf("expected pending-user, got %+v", session.User)
	}
	if session.AccessToken != "" {
		t.Errorf("expected no access token, got %q", session.AccessToken)
	}
}

func TestSignInWithPassword(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/token" || r.URL.Query().Get("grant_type") != "password" {
			t.Errorf("unexpected request: %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "provider-token",
			"refresh_token": "refresh",
			"expires_in":    3600,
			"user":          map[string]any{"id": "user-123"},
		})
	}))

	session, err := client.SignInWithPassword(context.Background(), "trip@example.com", "hunter22")
	if err != nil {
		t.Fatalf("SignInWithPassword failed: %v", err)
	}
	if session.AccessToken != "provider-token" {
		t.Errorf("unexpected access token %q", session.AccessToken)
	}
	if session.User.ID != "user-123" {
		t.Errorf("unexpected user id %q", session.User.ID)
	}
}

func TestSignInWithPassword_BadCredentials(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error_description":"Invalid login credentials"}`))
	}))

	_, err := client.SignInWithPassword(context.Background(), "trip@example.com", "wrong")
	if err == nil {
		t.Fatal("expected error for rejected credentials")
	}
	if !strings.Contains(err.Error(), "Invalid login credentials") {
		t.Errorf("expected provider message in error, got %v", err)
	}
}

func TestNewClient_Validation(t *testing.T) {
	if _, err := supabase.NewClient(supabase.Config{AnonKey: "k"}); err == nil {
		t.Error("expected error for missing URL")
	}
	if _, err := supabase.NewClient(supabase.Config{URL: "https://x.supabase.co"}); err == nil {
		t.Error("expected error for missing anon key")
	}
}
