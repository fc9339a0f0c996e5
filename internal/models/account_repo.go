package models

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go/types"
)

type AccountRepo interface {
	SignUp(ctx context.Context, account *Account) (interface{}, error)
	SignIn(ctx context.Context, email, password string) (interface{}, error)
	RefreshToken(ctx context.Context, refreshToken string) (interface{}, error)
	GetAccount(ctx context.Context, id uuid.UUID, accessToken string) (*Account, error)
	SetRole(ctx context.Context, email, role string) (*Account, error)
}

func (su *SupabaseRepo) SignUp(ctx context.Context, account *Account) (interface{}, error) {
	signed := types.SignupRequest{
		Email:    account.Email,
		Password: account.Password,
	}

	res, err := su.supabaseClient.Auth.Signup(signed)
	if err != nil {
		if strings.Contains(err.Error(), "User already Registered") {
			return nil, fmt.Errorf("email already in use")
		}
		if strings.Contains(err.Error(), "unique constraint") {
			return nil, fmt.Errorf("account already exists")
		}
		return nil, fmt.Errorf("failed to create account")
	}
	return res, nil
}

func (su *SupabaseRepo) SignIn(ctx context.Context, email, password string) (interface{}, error) {
	resp, err := su.supabaseClient.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %v", err)
	}
	return resp, nil
}

func (su *SupabaseRepo) RefreshToken(ctx context.Context, refreshToken string) (interface{}, error) {
	resp, err := su.supabaseClient.Auth.RefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %v", err)
	}
	return resp, nil
}

func (su *SupabaseRepo) GetAccount(ctx context.Context, id uuid.UUID, accessToken string) (*Account, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}

	client := su.supabaseClient
	if accessToken != "" {
		authClient, err := su.GetAuthenticatedClient(accessToken)
		if err != nil {
			return nil, fmt.Errorf("failed to create authenticated client: %v", err)
		}
		client = authClient
	}

	raw, status, err := client.From(AccountsTable).
		Select("id,email,role,created_at,updated_at", "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		if status != 0 {
			return nil, fmt.Errorf("postgrest error: status=%d body=%s err=%v", status, string(raw), err)
		}
		return nil, fmt.Errorf("failed to get account by ID: %v", err)
	}

	var accounts []Account
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account rows: %v", err)
	}

	if len(accounts) == 0 {
		return nil, fmt.Errorf("account not found")
	}

	return &accounts[0], nil
}

// SetRole updates an account's role by email. The seed command uses this with
// a service-role client to provision the first admin; there is deliberately
// no in-application email bypass.
func (su *SupabaseRepo) SetRole(ctx context.Context, email, role string) (*Account, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if role == "" {
		return nil, fmt.Errorf("role is required")
	}

	raw, count, err := su.supabaseClient.From(AccountsTable).
		Update(map[string]interface{}{
			"role":       role,
			"updated_at": time.Now(),
		}, "", "exact").
		Eq("email", email).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update role: %v", err)
	}

	if count == 0 {
		return nil, fmt.Errorf("no account found for %s", email)
	}

	var accounts []Account
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated account: %v", err)
	}

	if len(accounts) == 0 {
		return nil, fmt.Errorf("no account data returned after update")
	}

	return &accounts[0], nil
}
