package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"

	"kidventure/internal/backend"
	"kidventure/internal/catalog"
	"kidventure/internal/chatfilter"
	"kidventure/internal/config"
	"kidventure/internal/database"
	"kidventure/internal/handlers"
	"kidventure/internal/models"
	"kidventure/internal/navigation"
	"kidventure/internal/persistence"
	"kidventure/internal/security"
	"kidventure/internal/service"
	"kidventure/internal/session"
	"kidventure/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize device storage (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer db.Close()

	log.Printf("Storage connection established (type: %s)", cfg.StorageType)

	if err := db.EnsureSchema(); err != nil {
		log.Fatalf("Failed to ensure storage schema: %v", err)
	}

	// Seed the chat profanity filter word list
	if err := db.SeedBlockedWords(); err != nil {
		log.Printf("Warning: Failed to seed blocked words: %v", err)
	}

	// State container and message filter
	st := store.New(models.DefaultAppState())
	words, err := db.LoadBlockedWords()
	if err != nil {
		log.Printf("Warning: Failed to load blocked words, chat filter disabled: %v", err)
	}
	filter := chatfilter.New(words)
	st.SetMessageFilter(filter.Mask)

	// Persistence and catalog
	syncer := persistence.NewSynchronizer(persistence.NewSQLBlobStore(db), st)

	var client backend.Client
	if cfg.BackendBaseURL != "" {
		client = backend.NewHTTPClient(cfg.BackendBaseURL, cfg.BackendTimeout)
		log.Printf("Using catalog backend at %s", cfg.BackendBaseURL)
	} else {
		client = backend.NewMockClient()
		log.Println("BACKEND_BASE_URL not set, using the built-in mock catalog")
	}
	loader := catalog.NewLoader(client, st, cfg.BackendTimeout)

	// The stored state read and the catalog load run concurrently at
	// boot; the app is ready once both have finished
	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	var boot sync.WaitGroup
	boot.Add(2)
	go func() {
		defer boot.Done()
		if err := syncer.Load(bootCtx); err != nil {
			log.Printf("Warning: state load failed: %v", err)
		}
	}()
	go func() {
		defer boot.Done()
		if err := loader.LoadAll(bootCtx); err != nil {
			log.Printf("Warning: catalog load failed, continuing without it: %v", err)
		}
	}()
	boot.Wait()
	cancelBoot()
	log.Println("Boot complete: state loaded, catalog ready")

	// Sessions
	secret := cfg.SessionSecret
	if secret == "" {
		secret = uuid.New().String()
		log.Println("Warning: SESSION_SECRET not set, sessions will not survive a restart")
	}
	sessions, err := session.NewManager(secret, cfg.SessionTTL)
	if err != nil {
		log.Fatalf("Failed to initialize sessions: %v", err)
	}

	// Moderation email notifications
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	moderationService := service.NewModerationService(loader, st, emailService)

	// Navigation bridge over the in-process navigator
	bridge := navigation.NewBridge(navigation.NewMemoryNavigator())

	oauthProviders := map[string]handlers.OAuthProvider{
		"google": {
			Name: "google",
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     google.Endpoint,
				Scopes:       []string{"openid", "email", "profile"},
			},
			UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		},
		"facebook": {
			Name: "facebook",
			Config: &oauth2.Config{
				ClientID:     cfg.FacebookClientID,
				ClientSecret: cfg.FacebookClientSecret,
				Endpoint:     facebook.Endpoint,
				Scopes:       []string{"email", "public_profile"},
			},
			UserInfoURL: "https://graph.facebook.com/me?fields=id,name,email",
		},
	}

	// Initialize handlers
	limiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(sessions, limiter)
	authHandler := handlers.NewAuthHandler(st, sessions, oauthProviders, cfg.OAuthRedirectBaseURL)
	stateHandler := handlers.NewStateHandler(st, sessions, syncer)
	progressHandler := handlers.NewProgressHandler(st)
	chatHandler := handlers.NewChatHandler(st)
	catalogHandler := handlers.NewCatalogHandler(st, loader, moderationService)
	navigationHandler := handlers.NewNavigationHandler(bridge)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("GET /api/auth/{provider}/start", middleware.RateLimit(authHandler.StartOAuth))
	mux.HandleFunc("GET /api/auth/{provider}/callback", authHandler.OAuthCallback)
	mux.HandleFunc("GET /api/catalog", catalogHandler.GetCatalog)

	// Session routes
	mux.HandleFunc("GET /api/state", middleware.RequireSession(stateHandler.GetState))
	mux.HandleFunc("POST /api/onboarding/complete", middleware.RequireSession(stateHandler.CompleteOnboarding))
	mux.HandleFunc("POST /api/auth/logout", middleware.RequireSession(stateHandler.Logout))

	// Parent routes
	mux.HandleFunc("POST /api/kids", middleware.RequireRole(models.RoleParent, stateHandler.AddKid))
	mux.HandleFunc("PUT /api/kids/{id}", middleware.RequireRole(models.RoleParent, stateHandler.UpdateKid))
	mux.HandleFunc("GET /api/kids/suggestion", middleware.RequireRole(models.RoleParent, stateHandler.SuggestIdentity))
	mux.HandleFunc("POST /api/session/kid/{id}", middleware.RequireRole(models.RoleParent, stateHandler.SwitchToKid))
	mux.HandleFunc("POST /api/session/parent", middleware.RequireSession(stateHandler.SwitchToParent))

	// Progress routes
	mux.HandleFunc("POST /api/kids/{id}/enroll", middleware.RequireSession(progressHandler.Enroll))
	mux.HandleFunc("POST /api/kids/{id}/lessons/complete", middleware.RequireSession(progressHandler.CompleteLesson))
	mux.HandleFunc("GET /api/kids/{id}/progress", middleware.RequireSession(progressHandler.ListProgress))
	mux.HandleFunc("GET /api/kids/{id}/progress/{courseId}", middleware.RequireSession(progressHandler.GetProgress))

	// Chat routes
	mux.HandleFunc("GET /api/chats", middleware.RequireSession(chatHandler.ListConversations))
	mux.HandleFunc("POST /api/chats", middleware.RequireSession(chatHandler.StartChat))
	mux.HandleFunc("GET /api/chats/{id}/messages", middleware.RequireSession(chatHandler.ListMessages))
	mux.HandleFunc("POST /api/chats/{id}/messages", middleware.RequireSession(chatHandler.SendMessage))
	mux.HandleFunc("POST /api/chats/{id}/read", middleware.RequireSession(chatHandler.MarkRead))

	// Catalog and review routes
	mux.HandleFunc("POST /api/catalog/refresh", middleware.RequireSession(catalogHandler.Refresh))
	mux.HandleFunc("POST /api/reviews", middleware.RequireSession(catalogHandler.AddReview))

	// Admin moderation routes
	mux.HandleFunc("PATCH /api/admin/teachers/{id}/verification", middleware.RequireRole(models.RoleAdmin, catalogHandler.ModerateTeacher))
	mux.HandleFunc("PATCH /api/admin/courses/{id}/status", middleware.RequireRole(models.RoleAdmin, catalogHandler.ModerateCourse))
	mux.HandleFunc("PATCH /api/admin/activities/{id}/status", middleware.RequireRole(models.RoleAdmin, catalogHandler.ModerateActivity))

	// Navigation routes
	mux.HandleFunc("GET /api/navigation/current", navigationHandler.Current)
	mux.HandleFunc("POST /api/navigation/view", navigationHandler.SetView)
	mux.HandleFunc("POST /api/navigation/back", navigationHandler.GoBack)

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Warning: shutdown did not finish cleanly: %v", err)
	}
}
