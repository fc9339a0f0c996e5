// Command seed provisions the first admin account. It promotes an existing
// account row to the admin role by email, using the service-role key so row
// level security does not get in the way. This replaces any in-application
// bootstrap shortcut: admin access is only ever granted through this
// explicit, auditable step.
//
//	go run ./cmd/seed -email you@example.com
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/portfolio/internal/connect"
	"github.com/joshua-takyi/portfolio/internal/models"
)

func main() {
	_ = godotenv.Load(".env.local")

	email := flag.String("email", "", "email of the account to promote")
	role := flag.String("role", "admin", "role to assign")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if *email == "" {
		logger.Error("an -email flag is required")
		os.Exit(1)
	}

	client, err := connect.InitSupabaseService()
	if err != nil {
		logger.Error("Failed to connect to Supabase", "error", err)
		os.Exit(1)
	}

	repo := models.SupabaseNewRepo(client, os.Getenv("SUPABASE_URL"), os.Getenv("SUPABASE_SERVICE_ROLE_KEY"))

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	account, err := repo.SetRole(ctx, *email, *role)
	if err != nil {
		logger.Error("Failed to assign role", "email", *email, "error", err)
		os.Exit(1)
	}

	logger.Info("Role assigned", "email", account.Email, "role", account.Role, "account_id", account.ID)
}
