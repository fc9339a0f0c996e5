package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/joshua-takyi/portfolio/internal/helpers"
	"github.com/joshua-takyi/portfolio/internal/models"
)

type AuthService struct {
	accountRepo models.AccountRepo
}

func NewAuthService(accountRepo models.AccountRepo) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
	}
}

func (as *AuthService) SignUp(account *models.Account) (interface{}, error) {
	if err := models.Validate.Struct(account); err != nil {
		return nil, err
	}

	if !helpers.IsPasswordStrong(account.Password) {
		return nil, fmt.Errorf("password is not strong enough")
	}

	return as.accountRepo.SignUp(context.Background(), account)
}

func (as *AuthService) SignIn(email, password string) (interface{}, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("invalid email format: %v", err)
	}
	if err := models.Validate.Var(password, "required,min=8"); err != nil {
		return nil, fmt.Errorf("invalid password format: %v", err)
	}

	response, err := as.accountRepo.SignIn(context.Background(), email, password)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %v", err)
	}

	return response, nil
}

func (as *AuthService) RefreshToken(refreshToken string) (interface{}, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token is required")
	}
	response, err := as.accountRepo.RefreshToken(context.Background(), refreshToken)
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %v", err)
	}
	return response, nil
}

// GetAccount looks up the session-bound account row, which carries the admin
// flag the route gate checks.
func (as *AuthService) GetAccount(id uuid.UUID, accessToken string) (*models.Account, error) {
	account, err := as.accountRepo.GetAccount(context.Background(), id, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %v", err)
	}
	return account, nil
}
