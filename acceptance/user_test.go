package acceptance

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gearlog/gearlog-backend/internal/auth0"
)

type meResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func TestMe_CreatesUserOnFirstCall(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	w := ts.GET("/me", authHeader("user-1"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp meResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.ID == "" {
		t.Error("expected a user id")
	}
	if resp.Email != "" {
		t.Errorf("expected no email without a userinfo token, got %q", resp.Email)
	}
}

func TestMe_RefreshesProfileFromUserInfo(t *testing.T) {
	ts := NewTestServer(t)
	defer ts.Close()

	ts.Auth0.SetProfile("token-1", &auth0.UserInfo{
		Sub:   "user-1",
		Email: "rider@example.com",
		Name:  "Sam Rider",
	})

	headers := authHeader("user-1")
	headers["Authorization"] = "Bearer token-1"

	w := ts.GET("/me", headers)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp meResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Email != "rider@example.com" || resp.Name != "Sam Rider" {
		t.Errorf("expected refreshed profile, got %+v", resp)
	}

	// An unknown token degrades gracefully: the stored profile survives.
	headers["Authorization"] = "Bearer bogus"
	w = ts.GET("/me", headers)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Email != "rider@example.com" {
		t.Errorf("expected stored email to survive failed refresh, got %q", resp.Email)
	}
}
