package middleware

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"github.com/SarahOester/AWP-Exam-assignment/internal/repository" // Profile lookups
	"github.com/SarahOester/AWP-Exam-assignment/internal/session"    // Session cookie manager

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// RequireOwner loads the profile addressed by the :id route parameter and
// verifies on each request that it belongs to the authenticated user.
// Runs after RequireSession.
func RequireOwner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		profile, err := repository.FindProfileByID(db, id) // Load the addressed profile
		if errors.Is(err, repository.ErrNotFound) {
			// Unknown id is a user-visible 404
			c.String(http.StatusNotFound, "Couldn't find profile with id %s", id)
			c.Abort()
			return
		}
		if err != nil {
			c.String(http.StatusInternalServerError, "Something went wrong")
			c.Abort()
			return
		}
		s := c.MustGet(SessionKey).(*session.Session) // Session stored by RequireSession
		// Compare owner and session user in canonical string form
		if !profile.OwnedBy(s.UserID()) {
			c.String(http.StatusForbidden, "This profile doesn't belong to you")
			c.Abort()
			return
		}
		c.Set(ProfileKey, profile) // Store the profile for the handler
		c.Next()                   // Proceed to the next handler
	}
}
