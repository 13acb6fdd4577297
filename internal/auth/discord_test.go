package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/oauth2"
)

func TestProfile_AvatarURL(t *testing.T) {
	hash := "a1b2c3"
	empty := ""

	tests := []struct {
		name    string
		profile Profile
		want    string
	}{
		{
			name:    "with avatar hash",
			profile: Profile{ID: "123456", Avatar: &hash},
			want:    "https://cdn.discordapp.com/avatars/123456/a1b2c3.png",
		},
		{
			name:    "nil avatar",
			profile: Profile{ID: "123456"},
			want:    "",
		},
		{
			name:    "empty avatar hash",
			profile: Profile{ID: "123456", Avatar: &empty},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.profile.AvatarURL()
			if tt.want == "" {
				if got != nil {
					t.Errorf("AvatarURL() = %q, want nil", *got)
				}
				return
			}
			if got == nil || *got != tt.want {
				t.Errorf("AvatarURL() = %v, want %q", got, tt.want)
			}
		})
	}
}

func TestDiscord_AuthCodeURL(t *testing.T) {
	d := NewDiscord(DiscordConfig{
		ClientID:    "client-id",
		RedirectURL: "http://localhost:8080/auth/callback",
	})

	url := d.AuthCodeURL("state-token")
	if !strings.HasPrefix(url, "https://discord.com/oauth2/authorize") {
		t.Errorf("AuthCodeURL should target the Discord authorize endpoint, got %s", url)
	}
	for _, want := range []string{"client_id=client-id", "state=state-token", "identify", "email"} {
		if !strings.Contains(url, want) {
			t.Errorf("AuthCodeURL missing %q: %s", want, url)
		}
	}
}

func TestDiscord_FetchProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/@me" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":       "9876",
			"username": "tester",
			"avatar":   "deadbeef",
			"email":    "tester@example.com",
		})
	}))
	defer srv.Close()

	d := NewDiscord(DiscordConfig{ClientID: "id", ClientSecret: "secret", APIBase: srv.URL})

	profile, err := d.FetchProfile(context.Background(), &oauth2.Token{AccessToken: "token"})
	if err != nil {
		t.Fatalf("FetchProfile error: %v", err)
	}
	if profile.ID != "9876" || profile.Username != "tester" {
		t.Errorf("unexpected profile: %+v", profile)
	}
	if profile.Avatar == nil || *profile.Avatar != "deadbeef" {
		t.Errorf("avatar hash not decoded: %+v", profile.Avatar)
	}
	if profile.Email == nil || *profile.Email != "tester@example.com" {
		t.Errorf("email not decoded: %+v", profile.Email)
	}
}

func TestDiscord_FetchProfile_MissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"username": "anonymous"})
	}))
	defer srv.Close()

	d := NewDiscord(DiscordConfig{APIBase: srv.URL})

	if _, err := d.FetchProfile(context.Background(), &oauth2.Token{AccessToken: "token"}); err == nil {
		t.Fatal("expected error for profile without id")
	}
}
