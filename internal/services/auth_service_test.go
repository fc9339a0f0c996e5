package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/joshua-takyi/portfolio/internal/models"
)

type mockAccountRepo struct {
	accounts      map[string]*models.Account
	signUpCalled  bool
	signInCalled  bool
	refreshCalled bool
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{accounts: map[string]*models.Account{}}
}

func (m *mockAccountRepo) SignUp(_ context.Context, account *models.Account) (interface{}, error) {
	m.signUpCalled = true
	account.ID = uuid.New()
	m.accounts[account.Email] = account
	return account, nil
}

func (m *mockAccountRepo) SignIn(_ context.Context, email, password string) (interface{}, error) {
	m.signInCalled = true
	account, ok := m.accounts[email]
	if !ok || account.Password != password {
		return nil, fmt.Errorf("invalid credentials")
	}
	return account, nil
}

func (m *mockAccountRepo) RefreshToken(_ context.Context, refreshToken string) (interface{}, error) {
	m.refreshCalled = true
	if refreshToken == "expired" {
		return nil, fmt.Errorf("refresh token expired")
	}
	return map[string]string{"access_token": "fresh"}, nil
}

func (m *mockAccountRepo) GetAccount(_ context.Context, id uuid.UUID, _ string) (*models.Account, error) {
	for _, account := range m.accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return nil, fmt.Errorf("account not found")
}

func (m *mockAccountRepo) SetRole(_ context.Context, email, role string) (*models.Account, error) {
	account, ok := m.accounts[email]
	if !ok {
		return nil, fmt.Errorf("no account found for %s", email)
	}
	account.Role = role
	return account, nil
}

func TestSignUpRejectsWeakPassword(t *testing.T) {
	repo := newMockAccountRepo()
	as := NewAuthService(repo)

	_, err := as.SignUp(&models.Account{Email: "admin@example.com", Password: "password"})
	if err == nil {
		t.Fatal("expected weak password rejection")
	}
	if repo.signUpCalled {
		t.Error("weak password must not reach the account repo")
	}

	if _, err := as.SignUp(&models.Account{Email: "admin@example.com", Password: "S7rong!Pass"}); err != nil {
		t.Fatalf("strong password rejected: %v", err)
	}
	if !repo.signUpCalled {
		t.Error("expected repo sign-up call")
	}
}

func TestSignInValidatesInput(t *testing.T) {
	repo := newMockAccountRepo()
	as := NewAuthService(repo)

	if _, err := as.SignIn("not-an-email", "S7rong!Pass"); err == nil {
		t.Error("expected rejection of malformed email")
	}
	if _, err := as.SignIn("admin@example.com", "short"); err == nil {
		t.Error("expected rejection of a too-short password")
	}
	if repo.signInCalled {
		t.Error("invalid input must not reach the account repo")
	}
}

func TestRefreshTokenRequiresToken(t *testing.T) {
	as := NewAuthService(newMockAccountRepo())

	if _, err := as.RefreshToken(""); err == nil {
		t.Error("expected error for empty refresh token")
	}
	if _, err := as.RefreshToken("expired"); err == nil {
		t.Error("expected error for expired refresh token")
	}
	if _, err := as.RefreshToken("valid"); err != nil {
		t.Errorf("valid refresh failed: %v", err)
	}
}
