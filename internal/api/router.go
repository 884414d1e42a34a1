package api

import (
	"embed"         // Embedded template files
	"html/template" // Template parsing
	"strconv"       // String conversion

	"github.com/SarahOester/AWP-Exam-assignment/internal/config"     // Application configuration
	"github.com/SarahOester/AWP-Exam-assignment/internal/middleware" // Auth and ownership middleware
	"github.com/SarahOester/AWP-Exam-assignment/internal/repository" // Data access
	"github.com/SarahOester/AWP-Exam-assignment/internal/session"    // Session cookie manager

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

//go:embed templates/*.html
var templateFS embed.FS

// SetupRouter builds the gin engine with templates and all routes wired.
// Shared by the server binary and the handler tests.
func SetupRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *gin.Engine {
	r := gin.Default() // Gin router instance
	// Templates are embedded so the router works from any working directory
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	sm := session.NewManager(cfg.SessionSecret) // Session cookie manager

	// Public routes
	r.GET("/", IndexHandler(db, rdb, sm))        // Profile listing with search and sort
	r.GET("/login", LoginFormHandler(sm))        // Login form
	r.POST("/login", LoginHandler(db, sm))       // Login action
	r.GET("/register", RegisterFormHandler(sm))  // Registration form
	r.POST("/register", RegisterHandler(db, sm)) // Registration action
	r.POST("/logout", LogoutHandler(sm))         // Logout action

	// Profile routes (require an authenticated session)
	profiles := r.Group("/profiles")
	profiles.Use(middleware.RequireSession(sm))
	profiles.GET("/new", NewProfileFormHandler(db, sm))      // Create form
	profiles.POST("/new", CreateProfileHandler(db, rdb, sm)) // Create action

	// Profile-scoped routes (additionally require ownership of :id)
	owned := profiles.Group("")
	owned.Use(middleware.RequireOwner(db))
	owned.GET("/:id", ProfileHandler(db, sm))                    // Profile page
	owned.POST("/:id", ProfileActionHandler(db, rdb))            // Like toggle / delete
	owned.GET("/update/:id", EditProfileFormHandler(db, sm))     // Edit form
	owned.POST("/update/:id", UpdateProfileHandler(db, rdb, sm)) // Update action

	return r
}

// pageData decorates template data with the navigation state: whether the
// visitor is logged in and whether they already own a profile
func pageData(c *gin.Context, db *gorm.DB, sm *session.Manager, data gin.H) gin.H {
	s := sm.Get(c)
	data["LoggedIn"] = s.UserID() != ""
	data["HasProfile"] = false
	if uid, err := strconv.ParseUint(s.UserID(), 10, 64); err == nil {
		if profile, err := repository.FindProfileByOwner(db, uint(uid)); err == nil {
			data["HasProfile"] = true
			data["MyProfileID"] = profile.ID
		}
	}
	return data
}
