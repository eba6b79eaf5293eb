package container

import (
	"context"
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/google/uuid"
	"github.com/mawuli-dev/glambook/internal/models"
	"github.com/mawuli-dev/glambook/internal/services"
	"github.com/mawuli-dev/glambook/internal/templates"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger     *slog.Logger
	Cloudinary *cloudinary.Cloudinary
	// Database clients
	SupabaseClient      *supabase.Client
	MongoDBClient       *mongo.Client
	Renderer            *templates.Renderer
	ProfileService      *services.ProfileService
	SelectionService    *services.SelectionService
	PresentationService *services.PresentationService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cloudinary *cloudinary.Cloudinary,
	supabaseClient *supabase.Client,
	mongoDBClient *mongo.Client,
	supaUrl, supaKey string,
) *Container {
	// Initialize repositories
	supa := models.SupabaseNewRepo(supabaseClient, supaUrl, supaKey)
	mongoRepo := models.MongodbNewRepo(mongoDBClient)

	// Renderer falls back silently for viewers but leaves an audit trail
	renderer := templates.NewRenderer(logger).
		WithFallbackHook(fallbackRecorder(mongoRepo, logger))

	profileService := services.NewProfileService(supa, cloudinary)
	selectionService := services.NewSelectionService(supa, mongoRepo, renderer, logger)
	presentationService := services.NewPresentationService(supa, mongoRepo, renderer, logger)

	return &Container{
		Logger:              logger,
		Cloudinary:          cloudinary,
		SupabaseClient:      supabaseClient,
		MongoDBClient:       mongoDBClient,
		Renderer:            renderer,
		ProfileService:      profileService,
		SelectionService:    selectionService,
		PresentationService: presentationService,
	}
}

// fallbackRecorder adapts the mongo event repo to the renderer's hook shape.
func fallbackRecorder(events models.TemplateEventRepo, logger *slog.Logger) templates.FallbackFunc {
	return func(ctx context.Context, ownerID, requested, resolved string) {
		id, err := uuid.Parse(ownerID)
		if err != nil {
			return
		}
		if err := events.RecordFallback(ctx, id, requested, resolved); err != nil {
			logger.Warn("Failed to record template fallback", "owner_id", ownerID, "error", err)
		}
	}
}
