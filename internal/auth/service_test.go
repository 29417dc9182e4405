package auth

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/Rickychen930/sing4you-sub002/internal/models"
	"github.com/Rickychen930/sing4you-sub002/internal/store"
)

func discardLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthFixture(t *testing.T) *Service {
	t.Helper()
	st, err := store.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	if err := st.InitSchema(); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.CreateAdmin(&models.Admin{
		ID:           "admin-1",
		Email:        "julie@example.com",
		PasswordHash: string(hash),
		Name:         "Julie",
	}); err != nil {
		t.Fatalf("CreateAdmin: %v", err)
	}

	svc, err := NewService(st, testIssuer(), "", "", "", discardLog())
	if err != nil {
		t.Fatal(err)
	}
	return svc
}

func TestLogin(t *testing.T) {
	svc := newAuthFixture(t)

	res, err := svc.Login("Julie@Example.com ", "correct-horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.User.ID != "admin-1" || res.User.Email != "julie@example.com" {
		t.Errorf("user = %+v", res.User)
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		t.Error("expected both tokens to be minted")
	}

	claims, err := svc.Tokens().VerifyAccessToken(res.AccessToken)
	if err != nil {
		t.Fatalf("minted access token fails verification: %v", err)
	}
	if claims.UserID != "admin-1" {
		t.Errorf("claims.UserID = %q", claims.UserID)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc := newAuthFixture(t)

	_, errWrongPassword := svc.Login("julie@example.com", "wrong")
	_, errUnknownEmail := svc.Login("nobody@example.com", "whatever")

	if !errors.Is(errWrongPassword, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v", errWrongPassword)
	}
	if !errors.Is(errUnknownEmail, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v", errUnknownEmail)
	}
	if errWrongPassword.Error() != errUnknownEmail.Error() {
		t.Errorf("failure messages differ: %q vs %q", errWrongPassword, errUnknownEmail)
	}
}

func TestFallbackIdentity(t *testing.T) {
	svc, err := NewService(nil, testIssuer(), "admin@sing4you.com", "fallback-pass", "Admin", discardLog())
	if err != nil {
		t.Fatal(err)
	}

	res, err := svc.Login("admin@sing4you.com", "fallback-pass")
	if err != nil {
		t.Fatalf("fallback login: %v", err)
	}
	if res.User.ID != fallbackAdminID {
		t.Errorf("user ID = %q, want %q", res.User.ID, fallbackAdminID)
	}

	if _, err := svc.Login("admin@sing4you.com", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong fallback password error = %v", err)
	}

	// The refresh token resolves back to the fallback identity too.
	access, err := svc.Refresh(res.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	claims, err := svc.Tokens().VerifyAccessToken(access)
	if err != nil || claims.UserID != fallbackAdminID {
		t.Errorf("refreshed claims = %+v, err %v", claims, err)
	}
}

func TestRefresh(t *testing.T) {
	svc := newAuthFixture(t)

	res, err := svc.Login("julie@example.com", "correct-horse")
	if err != nil {
		t.Fatal(err)
	}

	access, err := svc.Refresh(res.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	claims, err := svc.Tokens().VerifyAccessToken(access)
	if err != nil {
		t.Fatalf("refreshed access token invalid: %v", err)
	}
	if claims.UserID != "admin-1" {
		t.Errorf("claims.UserID = %q", claims.UserID)
	}

	// An access token never works as a refresh token.
	if _, err := svc.Refresh(res.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Refresh(access token) error = %v, want ErrInvalidToken", err)
	}
}

func TestRefreshUnknownIdentity(t *testing.T) {
	svc := newAuthFixture(t)

	// A structurally valid refresh token naming an identity the store no
	// longer holds is rejected.
	raw, err := svc.Tokens().IssueRefreshToken("ghost", "ghost@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Refresh(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Refresh for deleted admin error = %v, want ErrInvalidToken", err)
	}
}
