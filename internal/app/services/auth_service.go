package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/retrieverhq/retriever-study/internal/app/models/dto"
	"github.com/retrieverhq/retriever-study/internal/pkg/apperrors"
	"github.com/retrieverhq/retriever-study/internal/pkg/auth"
)

// GoogleUserInfo is the identity returned by the OAuth provider.
type GoogleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// IdentityProvider exchanges an authorization code for a verified
// identity. Tests substitute a fake; production uses Google.
type IdentityProvider interface {
	Authenticate(ctx context.Context, code string) (*GoogleUserInfo, error)
	AuthCodeURL(state string) string
}

// googleIdentityProvider implements IdentityProvider against Google's
// OAuth2 endpoints.
type googleIdentityProvider struct {
	config      *oauth2.Config
	userInfoURL string
}

// NewGoogleIdentityProvider creates an IdentityProvider backed by
// Google's OAuth2 endpoints.
func NewGoogleIdentityProvider(clientID, clientSecret, redirectURL string) IdentityProvider {
	return &googleIdentityProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"openid",
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		userInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
	}
}

func (p *googleIdentityProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (p *googleIdentityProvider) Authenticate(ctx context.Context, code string) (*GoogleUserInfo, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	resp, err := client.Get(p.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected user info status code: %d", resp.StatusCode)
	}

	var info GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	return &info, nil
}

// AuthService defines authentication operations
type AuthService interface {
	GetLoginURL(state string) string
	LoginWithGoogle(ctx context.Context, code string) (*dto.TokenResponse, error)
	ValidateToken(tokenString string) (*auth.Claims, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userStore     UserStore
	provider      IdentityProvider
	jwtService    *auth.JWTService
	allowedDomain string
	logger        zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userStore UserStore, provider IdentityProvider, jwtService *auth.JWTService, allowedDomain string, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userStore:     userStore,
		provider:      provider,
		jwtService:    jwtService,
		allowedDomain: allowedDomain,
		logger:        logger,
	}
}

// GetLoginURL returns the provider consent screen URL for the given state
func (s *authServiceImpl) GetLoginURL(state string) string {
	return s.provider.AuthCodeURL(state)
}

// LoginWithGoogle exchanges the authorization code, enforces the campus
// email domain, upserts the profile and issues an access token.
func (s *authServiceImpl) LoginWithGoogle(ctx context.Context, code string) (*dto.TokenResponse, error) {
	if strings.TrimSpace(code) == "" {
		return nil, apperrors.NewValidationError("Authorization code is required")
	}

	info, err := s.provider.Authenticate(ctx, code)
	if err != nil {
		s.logger.Error().Err(err).Msg("Google authentication failed")
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Google authentication failed")
	}

	if err := s.checkDomain(info.Email); err != nil {
		return nil, err
	}

	var pictureURL *string
	if info.Picture != "" {
		pictureURL = &info.Picture
	}

	user, err := s.userStore.UpsertOAuthUser(ctx, info.ID, info.Name, info.Email, pictureURL)
	if err != nil {
		return nil, fmt.Errorf("error upserting user: %w", err)
	}

	accessToken, expiresIn, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}

	s.logger.Info().
		Str("userID", user.ID).
		Str("email", user.Email).
		Msg("User logged in")

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(expiresIn),
		User:        dto.FromUser(user),
	}, nil
}

// ValidateToken validates an access token and returns its claims
func (s *authServiceImpl) ValidateToken(tokenString string) (*auth.Claims, error) {
	return s.jwtService.ValidateToken(tokenString)
}

// checkDomain enforces the allowed campus email domain. An empty
// configured domain disables the restriction.
func (s *authServiceImpl) checkDomain(email string) error {
	if s.allowedDomain == "" {
		return nil
	}

	at := strings.LastIndex(email, "@")
	if at < 0 || !strings.EqualFold(email[at+1:], s.allowedDomain) {
		return apperrors.NewCustomError(apperrors.ErrDomainNotAllowed,
			fmt.Sprintf("Only %s accounts can sign in", s.allowedDomain))
	}
	return nil
}
