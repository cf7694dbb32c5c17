package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retrieverhq/retriever-study/internal/pkg/apperrors"
	"github.com/retrieverhq/retriever-study/internal/pkg/auth"
)

// fakeIdentityProvider returns a canned identity for any code, or an
// error when set.
type fakeIdentityProvider struct {
	info *GoogleUserInfo
	err  error
}

func (f *fakeIdentityProvider) Authenticate(_ context.Context, _ string) (*GoogleUserInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

func (f *fakeIdentityProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "retriever-study-test",
	})
}

func newAuthFixture(provider IdentityProvider, allowedDomain string) (AuthService, *memUserStore) {
	userStore := newMemUserStore()
	svc := NewAuthService(userStore, provider, testJWTService(), allowedDomain, testLogger())
	return svc, userStore
}

func TestLoginWithGoogleIssuesToken(t *testing.T) {
	provider := &fakeIdentityProvider{info: &GoogleUserInfo{
		ID:      "google-123",
		Email:   "student@umbc.edu",
		Name:    "Student",
		Picture: "https://example.com/p.png",
	}}
	svc, userStore := newAuthFixture(provider, "umbc.edu")

	resp, err := svc.LoginWithGoogle(context.Background(), "valid-code")
	if err != nil {
		t.Fatalf("LoginWithGoogle returned error: %v", err)
	}

	if resp.TokenType != "Bearer" {
		t.Errorf("token type = %q, want Bearer", resp.TokenType)
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("expiresIn = %d, want 3600", resp.ExpiresIn)
	}
	if resp.User.Email != "student@umbc.edu" {
		t.Errorf("user email = %q", resp.User.Email)
	}

	claims, err := svc.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token failed validation: %v", err)
	}
	if claims.Email != "student@umbc.edu" {
		t.Errorf("claims email = %q", claims.Email)
	}

	stored, _ := userStore.GetByGoogleID(context.Background(), "google-123")
	if stored == nil {
		t.Fatal("user was not upserted")
	}
	if claims.UserID != stored.ID {
		t.Errorf("claims userID = %q, want %q", claims.UserID, stored.ID)
	}
}

func TestLoginWithGoogleIsUpsert(t *testing.T) {
	provider := &fakeIdentityProvider{info: &GoogleUserInfo{
		ID:    "google-123",
		Email: "student@umbc.edu",
		Name:  "Student",
	}}
	svc, userStore := newAuthFixture(provider, "umbc.edu")

	if _, err := svc.LoginWithGoogle(context.Background(), "code-1"); err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	first, _ := userStore.GetByGoogleID(context.Background(), "google-123")

	provider.info.Name = "Student Renamed"
	if _, err := svc.LoginWithGoogle(context.Background(), "code-2"); err != nil {
		t.Fatalf("second login failed: %v", err)
	}
	second, _ := userStore.GetByGoogleID(context.Background(), "google-123")

	if second.ID != first.ID {
		t.Errorf("repeat login created a new user: %q vs %q", second.ID, first.ID)
	}
	if second.Name != "Student Renamed" {
		t.Errorf("name = %q after repeat login, want refreshed value", second.Name)
	}
}

func TestLoginWithGoogleEmptyCode(t *testing.T) {
	svc, _ := newAuthFixture(&fakeIdentityProvider{}, "umbc.edu")

	_, err := svc.LoginWithGoogle(context.Background(), "   ")
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("error = %v, want ErrValidationFailed", err)
	}
}

func TestLoginWithGoogleProviderRejection(t *testing.T) {
	provider := &fakeIdentityProvider{err: errors.New("invalid_grant")}
	svc, _ := newAuthFixture(provider, "umbc.edu")

	_, err := svc.LoginWithGoogle(context.Background(), "bad-code")
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginWithGoogleDomainRestriction(t *testing.T) {
	cases := []struct {
		name          string
		email         string
		allowedDomain string
		wantErr       bool
	}{
		{"allowed domain", "a@umbc.edu", "umbc.edu", false},
		{"case insensitive", "a@UMBC.EDU", "umbc.edu", false},
		{"foreign domain", "a@gmail.com", "umbc.edu", true},
		{"subdomain is not the domain", "a@cs.umbc.edu", "umbc.edu", true},
		{"no at sign", "not-an-email", "umbc.edu", true},
		{"restriction disabled", "a@gmail.com", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &fakeIdentityProvider{info: &GoogleUserInfo{
				ID:    "google-1",
				Email: tc.email,
				Name:  "Someone",
			}}
			svc, _ := newAuthFixture(provider, tc.allowedDomain)

			_, err := svc.LoginWithGoogle(context.Background(), "code")
			if tc.wantErr {
				if !errors.Is(err, apperrors.ErrDomainNotAllowed) {
					t.Errorf("error = %v, want ErrDomainNotAllowed", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestGetLoginURLCarriesState(t *testing.T) {
	svc, _ := newAuthFixture(&fakeIdentityProvider{}, "umbc.edu")

	url := svc.GetLoginURL("xyzzy")
	if url != "https://accounts.example.com/auth?state=xyzzy" {
		t.Errorf("login url = %q", url)
	}
}
