package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	_ "github.com/foodgram/gin-foodgram-api/docs" // Import generated docs
	"github.com/foodgram/gin-foodgram-api/internal/auth"
	"github.com/foodgram/gin-foodgram-api/internal/config"
	"github.com/foodgram/gin-foodgram-api/internal/controllers"
	"github.com/foodgram/gin-foodgram-api/internal/database"
	"github.com/foodgram/gin-foodgram-api/internal/middleware"
	"github.com/foodgram/gin-foodgram-api/internal/models"
	"github.com/foodgram/gin-foodgram-api/internal/services"
	"github.com/foodgram/gin-foodgram-api/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	db                   *gorm.DB
	oauthService         *auth.OAuthService
	userController       *controllers.UserController
	tagController        *controllers.TagController
	ingredientController *controllers.IngredientController
	recipeController     controllers.RecipeController
	configuration        *config.Config
)

// @title Foodgram API
// @version 1.0
// @description Recipe sharing API with favorites, subscriptions and shopping lists
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Initialize database connection
	setupDatabase(configuration)

	// Token issuance through the OAuth2 password grant
	oauthService = auth.NewOAuthService(db, configuration.JWTSecret, time.Duration(configuration.TokenTTLHours)*time.Hour)

	// Initialize services and controllers
	images := setupImageStore(configuration)
	userService := services.NewUserService(db)
	tagService := services.NewTagService(db)
	ingredientService := services.NewIngredientService(db)
	recipeService := services.NewRecipeService(db, images)
	favoriteService := services.NewFavoriteService(db)
	cartService := services.NewCartService(db)
	subscriptionService := services.NewSubscriptionService(db)

	userController = controllers.NewUserController(userService, subscriptionService, configuration.PageSize, configuration.RecipesLimit)
	tagController = controllers.NewTagController(tagService)
	ingredientController = controllers.NewIngredientController(ingredientService)
	recipeController = controllers.NewRecipeController(recipeService, favoriteService, cartService, configuration.PageSize)

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	log.Infof("Configuration loaded: %v", conf)
	return conf
}

// setupDatabase initializes the database connection, runs migrations and
// seeds the first-party OAuth client and default tags when missing
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.FromAppConfig(conf))
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))

	seedOAuthClient()

	var count int64
	db.Model(&models.Tag{}).Count(&count)
	if count == 0 {
		log.Info("Tag table is empty, seeding initial data")
		seedTags()
	}
	return db
}

// seedOAuthClient registers the first-party client the frontend uses for
// the password grant. The secret is stored as a bcrypt hash.
func seedOAuthClient() {
	clientID := config.GetEnvWithDefault("OAUTH_CLIENT_ID", "foodgram-web")

	var count int64
	db.Model(&models.OAuthClient{}).Where("id = ?", clientID).Count(&count)
	if count > 0 {
		return
	}

	secret := config.GetEnvWithDefault("OAUTH_CLIENT_SECRET", "foodgram-web-secret")
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	checkPanicErr(err)

	client := models.OAuthClient{
		ID:         clientID,
		Secret:     string(hash),
		Name:       "Foodgram Web",
		Domain:     config.GetEnvWithDefault("OAUTH_CLIENT_DOMAIN", "http://localhost"),
		Scopes:     "read write",
		GrantTypes: "password",
	}
	checkPanicErr(db.Create(&client).Error)
	log.Infof("Seeded OAuth client %q", clientID)
}

// seedTags creates the initial recipe tags
func seedTags() {
	tags := []models.Tag{
		{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
		{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
		{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
	}
	for _, tag := range tags {
		db.Create(&tag)
	}
	log.Info("Tags seeded successfully")
}

// setupImageStore selects the recipe image backend from configuration
func setupImageStore(conf *config.Config) storage.ImageStore {
	if conf.MediaDriver == "s3" {
		store, err := storage.NewS3Store(context.Background(), conf.S3Bucket, conf.S3Region,
			config.GetEnvWithDefault("AWS_ACCESS_KEY_ID", ""),
			config.GetEnvWithDefault("AWS_SECRET_ACCESS_KEY", ""))
		checkPanicErr(err)
		return store
	}
	return storage.NewDiskStore(conf.MediaRoot, conf.MediaBaseURL)
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	// Initialize Gin router
	router := gin.Default()

	// Define routes
	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	// Token issuance and revocation
	router.POST("/oauth/token", oauthService.HandleToken)
	router.POST("/oauth/revoke", oauthService.HandleRevoke)

	// Uploaded recipe images (disk driver only)
	if configuration.MediaDriver != "s3" {
		router.Static(configuration.MediaBaseURL, configuration.MediaRoot)
	}

	jwtSecret := []byte(configuration.JWTSecret)
	authRequired := middleware.OAuth2Auth(jwtSecret)
	authOptional := middleware.OptionalAuth(jwtSecret)
	adminOnly := middleware.RequireRole("admin")

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("", userController.Register)
			users.GET("", authOptional, userController.ListUsers)
			users.GET("/me", authRequired, userController.Me)
			users.POST("/set_password", authRequired, userController.SetPassword)
			users.GET("/subscriptions", authRequired, userController.ListSubscriptions)
			users.GET("/:id", authOptional, userController.GetUser)
			users.POST("/:id/subscribe", authRequired, userController.Subscribe)
			users.DELETE("/:id/subscribe", authRequired, userController.Unsubscribe)
		}

		tags := api.Group("/tags")
		{
			tags.GET("", tagController.GetAllTags)
			tags.GET("/:id", tagController.GetTagByID)
			tags.POST("", authRequired, adminOnly, tagController.CreateTag)
		}

		ingredients := api.Group("/ingredients")
		{
			ingredients.GET("", ingredientController.ListIngredients)
			ingredients.GET("/:id", ingredientController.GetIngredientByID)
			ingredients.POST("", authRequired, adminOnly, ingredientController.CreateIngredient)
		}

		recipes := api.Group("/recipes")
		{
			recipes.GET("", authOptional, recipeController.ListRecipes)
			recipes.GET("/download_shopping_cart", authRequired, recipeController.DownloadShoppingCart)
			recipes.GET("/:id", authOptional, recipeController.GetRecipe)
			recipes.POST("", authRequired, recipeController.CreateRecipe)
			recipes.PATCH("/:id", authRequired, recipeController.UpdateRecipe)
			recipes.DELETE("/:id", authRequired, recipeController.DeleteRecipe)
			recipes.POST("/:id/favorite", authRequired, recipeController.Favorite)
			recipes.DELETE("/:id/favorite", authRequired, recipeController.Unfavorite)
			recipes.POST("/:id/shopping_cart", authRequired, recipeController.AddToCart)
			recipes.DELETE("/:id/shopping_cart", authRequired, recipeController.RemoveFromCart)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "gin-foodgram-api",
	})
}
