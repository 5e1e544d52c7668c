package main

import (
	"html/template"
	"log"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Tholoanasello/HamiltonBlog1/api"
	"github.com/Tholoanasello/HamiltonBlog1/config"
	"github.com/Tholoanasello/HamiltonBlog1/database"
	"github.com/Tholoanasello/HamiltonBlog1/middleware"
	"github.com/Tholoanasello/HamiltonBlog1/models"
	"github.com/Tholoanasello/HamiltonBlog1/repository"
	"github.com/Tholoanasello/HamiltonBlog1/services"
	"github.com/Tholoanasello/HamiltonBlog1/utils"
)

func main() {
	// Load application configuration
	config.LoadConfig()

	// Initialize database connection
	db, err := database.Init()
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize database: %v", err)
	}

	// Auto-migrate database schema
	runMigrations(db)

	// Provision the admin credential row if missing
	seedAdminUser(db)

	// Initialize Repositories
	postRepo := repository.NewPostRepository(db)
	categoryRepo := repository.NewCustomCategoryRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	log.Println("INFO: [Main] Repositories initialized.")

	// Initialize Services
	storage, err := services.NewDiskStorage(config.AppConfig.Storage.Dir, config.AppConfig.Storage.PublicBaseURL)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize file storage: %v", err)
	}
	sessions := services.NewSessionManager()
	authService := services.NewAuthService(adminRepo, sessions, config.AppConfig.Admin.Username)
	postService := services.NewPostService(postRepo, categoryRepo, storage)
	log.Println("INFO: [Main] Services initialized.")

	// Initialize handlers with all dependencies
	apiHandler := api.NewAPIHandler(authService, postService)
	pageHandler := api.NewPageHandler(authService, postService)
	log.Println("INFO: [Main] Handlers initialized.")

	// Create Gin engine
	r := gin.Default()
	r.SetTrustedProxies(nil)

	// Register middlewares
	r.Use(middleware.Logger())
	r.Use(middleware.Cors())
	log.Println("INFO: [Main] Middlewares registered.")

	// Templates and static uploads
	r.SetFuncMap(template.FuncMap{
		"formatDate": utils.FormatDate,
		"markdown":   api.RenderMarkdown,
	})
	r.LoadHTMLGlob("templates/*.html")
	r.Static(config.AppConfig.Storage.PublicBaseURL, config.AppConfig.Storage.Dir)

	// Register routes
	registerRoutes(r, apiHandler, pageHandler, authService)
	log.Println("INFO: [Main] Routes registered.")

	// Start the server
	serverPort := ":" + config.AppConfig.Server.Port
	log.Printf("INFO: [Main] Starting server on port %s", serverPort)
	if err := r.Run(serverPort); err != nil {
		log.Fatalf("FATAL: [Main] Server failed to start: %v", err)
	}
}

func runMigrations(db *gorm.DB) {
	log.Println("INFO: [Main] Running database migrations...")
	err := db.AutoMigrate(
		&models.Post{},
		&models.CustomCategory{},
		&models.AdminUser{},
	)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to auto-migrate database: %v", err)
	}
	log.Println("INFO: [Main] Database migration completed.")
}

// seedAdminUser provisions the credential row with the documented
// default password when no row exists yet, so a fresh deployment is
// reachable. The row is never touched again by the application.
func seedAdminUser(db *gorm.DB) {
	username := config.AppConfig.Admin.Username
	var count int64
	if err := db.Model(&models.AdminUser{}).Where("username = ?", username).Count(&count).Error; err != nil {
		log.Fatalf("FATAL: [Main] Failed to check admin credential row: %v", err)
	}
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(services.DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to hash default admin password: %v", err)
	}
	admin := models.AdminUser{Username: username, PasswordHash: string(hash)}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("FATAL: [Main] Failed to seed admin credential row: %v", err)
	}
	log.Printf("INFO: [Main] Seeded admin credential row for '%s' with the default password.", username)
}

func registerRoutes(r *gin.Engine, handler *api.APIHandler, pages *api.PageHandler, authService services.AuthService) {
	// Rendered pages
	r.GET("/", pages.HomeHandler)
	r.GET("/valuation", pages.ValuationHandler)
	r.GET("/finance", pages.FinanceHandler)
	r.GET("/insights", pages.InsightsHandler)
	r.GET("/admin", pages.AdminHandler)

	// API route group
	apiGroup := r.Group("/api")
	{
		// Public read path
		apiGroup.GET("/posts", handler.PublicPostsHandler)

		// Admin management
		adminGroup := apiGroup.Group("/admin")
		{
			adminGroup.POST("/login", handler.LoginHandler)
			adminGroup.GET("/session", handler.SessionHandler)

			authed := adminGroup.Group("", middleware.RequireAdmin(authService))
			{
				authed.GET("/posts", handler.ListPostsHandler)
				authed.POST("/posts", handler.CreatePostHandler)
				authed.DELETE("/posts/:id", handler.DeletePostHandler)
				authed.GET("/categories", handler.ListCategoriesHandler)
			}
		}
	}
}
