package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"

	"github.com/event-kit/ticketing-service/internal/auth"
	"github.com/event-kit/ticketing-service/internal/config"
	apperrors "github.com/event-kit/ticketing-service/pkg/util"
)

const githubProfileURL = "https://api.github.com/user"

// AuthService performs the GitHub OAuth handshake: code exchange, profile
// fetch, and minting the bearer token handed back to API clients. The gate
// only consumes the resulting session or token.
type AuthService struct {
	oauth      *oauth2.Config
	tokens     *auth.TokenManager
	httpClient *http.Client
	profileURL string
}

// NewAuthService builds the service from the scoped OAuth/auth configuration.
func NewAuthService(cfg config.Config) *AuthService {
	return &AuthService{
		oauth: &oauth2.Config{
			ClientID:     cfg.OAuth.GitHubClientID,
			ClientSecret: cfg.OAuth.GitHubClientSecret,
			RedirectURL:  cfg.OAuth.GitHubCallbackURL,
			Scopes:       []string{"user:email"},
			Endpoint:     githuboauth.Endpoint,
		},
		tokens:     auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		profileURL: githubProfileURL,
	}
}

// TokenManager exposes the signer/verifier shared with the gate.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// LoginURL returns the GitHub authorize redirect target.
func (s *AuthService) LoginURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

type githubProfile struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// HandleCallback exchanges the authorization code, fetches the profile, and
// mints a signed token for the authenticated identity.
func (s *AuthService) HandleCallback(ctx context.Context, code string) (*auth.SessionUser, string, time.Time, error) {
	oauthToken, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("Authentication failed.")
	}

	profile, err := s.fetchProfile(ctx, oauthToken.AccessToken)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	user := &auth.SessionUser{
		ID:        strconv.FormatInt(profile.ID, 10),
		Username:  profile.Login,
		Name:      profile.Name,
		AvatarURL: profile.AvatarURL,
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, expiresAt, nil
}

func (s *AuthService) fetchProfile(ctx context.Context, accessToken string) (*githubProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.profileURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile fetch returned %d", resp.StatusCode)
	}

	var profile githubProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
