package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging
	"net/url" // For parsing the static upstream origin

	"complaint_tracker/internal/api"        // Custom package for API handlers
	"complaint_tracker/internal/complaints" // Custom package for the complaint repository
	"complaint_tracker/internal/config"     // Custom package for configuration
	"complaint_tracker/internal/geo"        // Custom package for reverse geocoding
	"complaint_tracker/internal/identity"   // Custom package for accounts and sessions
	"complaint_tracker/internal/middleware" // Custom package for middleware
	"complaint_tracker/internal/notify"     // Custom package for notifications
	"complaint_tracker/internal/offline"    // Custom package for the offline page cache
	"complaint_tracker/internal/stats"      // Custom package for dashboard aggregates
	"complaint_tracker/internal/store"      // Custom package for the Badger store

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Open the Badger store holding all collections
	st, err := store.Open(store.Config{Path: cfg.DataDir, SyncWrites: true})
	if err != nil {
		logrus.Fatalf("failed to open store: %v", err) // Fatal error if the store cannot open
	}
	defer st.Close()

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Assemble services. A missing email endpoint leaves the mailer nil, which
	// disables the email channel.
	var mailer notify.Mailer
	if client := notify.NewEmailClient(cfg.EmailEndpoint); client != nil {
		mailer = client
	}
	sink := notify.NewSink(st, mailer)
	repo := complaints.NewRepository(st, sink)
	accounts := identity.NewManager(st)
	dashboard := stats.NewService(st)
	geocoder := geo.NewClient(cfg.GeocodeURL)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/api/register", api.RegisterHandler(accounts, cfg.JWTSecret)) // Registration endpoint
	r.POST("/api/login", api.LoginHandler(accounts, cfg.JWTSecret))       // Login endpoint
	r.POST("/api/logout", api.LogoutHandler(accounts))                    // Logout endpoint
	r.GET("/api/session", middleware.OptionalSessionMiddleware(cfg.JWTSecret, st), api.SessionHandler()) // Current session endpoint

	// Public complaint routes. The optional session lets logged-in users get
	// attribution while anonymous visitors still read, file, and upvote.
	public := r.Group("/api/complaints")
	public.Use(middleware.OptionalSessionMiddleware(cfg.JWTSecret, st))
	public.GET("", api.ListComplaintsHandler(repo))                   // List all complaints
	public.POST("", api.SubmitComplaintHandler(repo, geocoder))       // File a complaint
	public.GET("/export", api.ExportCSVHandler(repo))                 // CSV export
	public.GET("/:id", api.GetComplaintHandler(repo))                 // Complaint detail
	public.POST("/:id/upvote", api.UpvoteHandler(repo))               // Upvote
	public.POST("/:id/comments", api.AddCommentHandler(repo))         // Comment on a complaint
	r.GET("/api/board", api.ListBoardHandler(repo))                   // Comment board listing
	r.GET("/api/leaderboard", api.LeaderboardHandler(dashboard))      // Reports-per-user ranking

	// Routes requiring a login
	user := r.Group("/api")
	user.Use(middleware.SessionMiddleware(cfg.JWTSecret, st))
	user.GET("/my-complaints", api.MyComplaintsHandler(repo))                // Own complaints
	user.POST("/board", api.PostBoardHandler(repo))                          // Post to the comment board
	user.GET("/profile", api.GetProfileHandler(accounts))                    // Read profile
	user.PUT("/profile", api.UpdateProfileHandler(accounts))                 // Update profile
	user.PUT("/profile/password", api.ChangePasswordHandler(accounts))       // Change password
	user.GET("/notifications", api.NotificationsHandler(sink))               // Notification listing
	user.POST("/notifications/read", api.MarkNotificationsReadHandler(sink)) // Mark all read

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.SessionMiddleware(cfg.JWTSecret, st), middleware.AdminOnlyMiddleware())
	adminGroup.GET("/complaints", api.FilteredComplaintsHandler(repo))          // Filtered complaint listing
	adminGroup.PUT("/complaints/:id/status", api.SetStatusHandler(repo))        // Triage status change
	adminGroup.DELETE("/complaints/:id", api.DeleteComplaintHandler(repo))      // Remove a complaint
	adminGroup.GET("/dashboard", api.DashboardHandler(repo, dashboard))         // Dashboard aggregates

	// Everything outside /api is served through the offline cache so the app
	// shell keeps working when the static origin is down.
	if cfg.StaticUpstream != "" {
		upstream, err := url.Parse(cfg.StaticUpstream)
		if err != nil {
			logrus.Fatalf("invalid static upstream: %v", err)
		}
		pages := offline.NewStrategy(upstream, offline.NewRedisCache(redisClient, offline.CacheName))
		if err := pages.Warm(context.Background()); err != nil {
			logrus.WithField("error", err.Error()).Warn("Cache warm-up incomplete")
		}
		r.NoRoute(gin.WrapH(pages))
	}

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
