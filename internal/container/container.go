package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joshua-takyi/portfolio/internal/config"
	"github.com/joshua-takyi/portfolio/internal/models"
	"github.com/joshua-takyi/portfolio/internal/services"
	"github.com/joshua-takyi/portfolio/internal/store"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger        *slog.Logger
	Cloudinary    *cloudinary.Cloudinary
	AllowedOrigin string
	// Database clients
	SupabaseClient *supabase.Client
	MongoDBClient  *mongo.Client
	Store          *store.Store
	AuthService    *services.AuthService
	StatsService   *services.StatsService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	cloudinary *cloudinary.Cloudinary,
	supabaseClient *supabase.Client,
	mongoDBClient *mongo.Client,
) *Container {
	// Initialize repositories
	supa := models.SupabaseNewRepo(supabaseClient, cfg.SupabaseURL, cfg.SupabaseAnonKey)
	mongo := models.MongodbNewRepo(mongoDBClient)

	contentStore := store.New(supa, logger)
	authService := services.NewAuthService(supa)
	statsService := services.NewStatsService(mongo, cfg.GithubUsername)

	return &Container{
		Logger:         logger,
		Cloudinary:     cloudinary,
		AllowedOrigin:  cfg.AllowedOrigin,
		SupabaseClient: supabaseClient,
		MongoDBClient:  mongoDBClient,
		Store:          contentStore,
		AuthService:    authService,
		StatsService:   statsService,
	}
}
