package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

const defaultAPIBase = "https://discord.com/api"

// Profile is the subset of a Discord account the ledger binds to a local
// user. Avatar is the raw avatar hash, not a URL; Email may be absent when
// the account has none or the scope was not granted.
type Profile struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Avatar   *string `json:"avatar"`
	Email    *string `json:"email"`
}

// AvatarURL derives the CDN URL for the profile's avatar, or nil when the
// account has no avatar set.
func (p Profile) AvatarURL() *string {
	if p.Avatar == nil || *p.Avatar == "" {
		return nil
	}
	url := fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", p.ID, *p.Avatar)
	return &url
}

// Discord drives the OAuth code flow against Discord and fetches the
// signed-in account's profile.
type Discord struct {
	conf    *oauth2.Config
	apiBase string
}

// DiscordConfig holds the OAuth application settings.
type DiscordConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// APIBase overrides the Discord API endpoint, for tests.
	APIBase string
}

// NewDiscord creates a Discord OAuth client requesting the identify and
// email scopes.
func NewDiscord(cfg DiscordConfig) *Discord {
	apiBase := cfg.APIBase
	if apiBase == "" {
		apiBase = defaultAPIBase
	}

	return &Discord{
		apiBase: apiBase,
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"identify", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://discord.com/oauth2/authorize",
				TokenURL: apiBase + "/oauth2/token",
			},
		},
	}
}

// AuthCodeURL returns the authorize URL the browser is redirected to.
func (d *Discord) AuthCodeURL(state string) string {
	return d.conf.AuthCodeURL(state)
}

// Exchange trades an authorization code for a token.
func (d *Discord) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := d.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return token, nil
}

// FetchProfile fetches the authenticated account from /users/@me.
func (d *Discord) FetchProfile(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	client := d.conf.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.apiBase+"/users/@me", nil)
	if err != nil {
		return nil, fmt.Errorf("build profile request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch profile: unexpected status %d", resp.StatusCode)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if profile.ID == "" {
		return nil, fmt.Errorf("profile response missing id")
	}

	return &profile, nil
}
