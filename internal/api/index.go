package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"github.com/SarahOester/AWP-Exam-assignment/internal/domain"     // Importing domain models
	"github.com/SarahOester/AWP-Exam-assignment/internal/repository" // Data access
	"github.com/SarahOester/AWP-Exam-assignment/internal/session"    // Session cookie manager
	"github.com/SarahOester/AWP-Exam-assignment/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// listingCacheKey caches the unfiltered, unsorted listing; filtered views
// are unbounded in key space and always hit the database
const listingCacheKey = "profiles:listing"

// invalidateListing drops the cached listing after any profile mutation
func invalidateListing(rdb *redis.Client) {
	_ = utils.DeleteCache(context.Background(), rdb, listingCacheKey)
}

// IndexHandler renders the public profile listing with optional free-text
// query and sort parameters
func IndexHandler(db *gorm.DB, rdb *redis.Client, sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("query") // Free-text filter across title, name and tags
		sort := c.Query("sort")   // One of title | updatedAt | like

		var profiles []domain.Profile
		// Only the default view is cached
		cacheable := query == "" && sort == ""
		found := false
		if cacheable {
			found, _ = utils.GetCache(context.Background(), rdb, listingCacheKey, &profiles)
		}
		if !found {
			var err error
			profiles, err = repository.SearchProfiles(db, query, sort)
			if err != nil {
				c.String(http.StatusInternalServerError, "Something went wrong")
				return
			}
			if cacheable {
				_ = utils.SetCache(context.Background(), rdb, listingCacheKey, profiles, 60*time.Second)
			}
		}
		c.HTML(http.StatusOK, "index.html", pageData(c, db, sm, gin.H{
			"Profiles": profiles, // Matching profiles
			"Query":    query,    // Re-rendered in the search box
			"Sort":     sort,     // Active sort field
		}))
	}
}
