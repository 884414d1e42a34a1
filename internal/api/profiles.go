package api

import (
	"errors"   // Error matching
	"fmt"      // Redirect target formatting
	"net/http" // HTTP status codes

	"github.com/SarahOester/AWP-Exam-assignment/internal/domain"     // Importing domain models
	"github.com/SarahOester/AWP-Exam-assignment/internal/middleware" // Context keys
	"github.com/SarahOester/AWP-Exam-assignment/internal/repository" // Data access
	"github.com/SarahOester/AWP-Exam-assignment/internal/session"    // Session cookie manager

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// formFields collects the editable profile fields from the posted form
func formFields(c *gin.Context) repository.ProfileFields {
	return repository.ProfileFields{
		Title:         c.PostForm("title"),         // Candidate headline
		FullName:      c.PostForm("fullName"),      // Candidate name
		Bio:           c.PostForm("bio"),           // Free-text introduction
		Tags:          c.PostForm("tags"),          // Comma-separated skill tags
		LinkLinkedIn:  c.PostForm("linkLinkedIn"),  // LinkedIn link
		LinkPortfolio: c.PostForm("linkPortfolio"), // Portfolio link
	}
}

// NewProfileFormHandler renders the empty create-profile form
func NewProfileFormHandler(db *gorm.DB, sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "profile_form.html", pageData(c, db, sm, gin.H{
			"Heading": "Create profile",
			"Action":  "/profiles/new",
			"Values":  repository.ProfileFields{},
			"Errors":  map[string]string{},
		}))
	}
}

// CreateProfileHandler creates a profile for the authenticated user
// (one profile per user)
func CreateProfileHandler(db *gorm.DB, rdb *redis.Client, sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet(middleware.UserIDKey).(uint) // Set by RequireSession
		fields := formFields(c)

		// rerender re-renders the form with errors and the submitted values
		rerender := func(msg string, fieldErrors map[string]string) {
			if fieldErrors == nil {
				fieldErrors = map[string]string{}
			}
			c.HTML(http.StatusBadRequest, "profile_form.html", pageData(c, db, sm, gin.H{
				"Heading": "Create profile",
				"Action":  "/profiles/new",
				"Values":  fields,
				"Error":   msg,
				"Errors":  fieldErrors,
			}))
		}
		profile, err := repository.CreateProfile(db, fields, userID)
		if err != nil {
			var vErr *repository.ValidationError
			switch {
			case errors.Is(err, repository.ErrDuplicateProfile):
				rerender("You already created a profile!", nil)
			case errors.As(err, &vErr):
				rerender("", vErr.Fields)
			default:
				logrus.WithFields(logrus.Fields{
					"user_id": userID,      // User ID
					"error":   err.Error(), // Error message
				}).Error("Failed to create profile")
				c.String(http.StatusInternalServerError, "Something went wrong")
			}
			return
		}
		// Log successful profile creation
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,     // User ID
			"profile_id": profile.ID, // Profile ID
		}).Info("Profile created")
		invalidateListing(rdb) // The listing changed
		c.Redirect(http.StatusFound, fmt.Sprintf("/profiles/%d", profile.ID))
	}
}

// ProfileHandler renders the profile page of the owner
func ProfileHandler(db *gorm.DB, sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := c.MustGet(middleware.ProfileKey).(*domain.Profile) // Loaded by RequireOwner
		c.HTML(http.StatusOK, "profile.html", pageData(c, db, sm, gin.H{
			"Profile": profile,
		}))
	}
}

// ProfileActionHandler handles the _action form posts on a profile page:
// like toggles the liked flag, delete removes the profile
func ProfileActionHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := c.MustGet(middleware.ProfileKey).(*domain.Profile) // Loaded by RequireOwner
		switch c.PostForm("_action") {
		case "like":
			if err := repository.ToggleLike(db, profile.ID); err != nil {
				c.String(http.StatusInternalServerError, "Something went wrong")
				return
			}
			invalidateListing(rdb) // The listing shows the like state
			c.Redirect(http.StatusFound, fmt.Sprintf("/profiles/%d", profile.ID))
		case "delete":
			if err := repository.DeleteProfile(db, profile.ID); err != nil {
				c.String(http.StatusInternalServerError, "Something went wrong")
				return
			}
			// Log profile deletion
			logrus.WithFields(logrus.Fields{
				"user_id":    profile.UserID, // Owning user
				"profile_id": profile.ID,     // Profile ID
			}).Info("Profile deleted")
			invalidateListing(rdb) // The listing changed
			c.Redirect(http.StatusFound, "/")
		default:
			c.String(http.StatusBadRequest, "Unknown action")
		}
	}
}

// EditProfileFormHandler renders the edit form prefilled with the profile
func EditProfileFormHandler(db *gorm.DB, sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := c.MustGet(middleware.ProfileKey).(*domain.Profile) // Loaded by RequireOwner
		c.HTML(http.StatusOK, "profile_form.html", pageData(c, db, sm, gin.H{
			"Heading": profile.Title,
			"Action":  fmt.Sprintf("/profiles/update/%d", profile.ID),
			"Values": repository.ProfileFields{
				Title:         profile.Title,         // Candidate headline
				FullName:      profile.FullName,      // Candidate name
				Bio:           profile.Bio,           // Free-text introduction
				Tags:          profile.Tags,          // Comma-separated skill tags
				LinkLinkedIn:  profile.LinkLinkedIn,  // LinkedIn link
				LinkPortfolio: profile.LinkPortfolio, // Portfolio link
			},
			"Errors": map[string]string{},
		}))
	}
}

// UpdateProfileHandler overwrites the editable fields of the profile
func UpdateProfileHandler(db *gorm.DB, rdb *redis.Client, sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := c.MustGet(middleware.ProfileKey).(*domain.Profile) // Loaded by RequireOwner
		fields := formFields(c)
		if err := repository.UpdateProfile(db, profile.ID, fields); err != nil {
			var vErr *repository.ValidationError
			if errors.As(err, &vErr) {
				c.HTML(http.StatusBadRequest, "profile_form.html", pageData(c, db, sm, gin.H{
					"Heading": profile.Title,
					"Action":  fmt.Sprintf("/profiles/update/%d", profile.ID),
					"Values":  fields,
					"Errors":  vErr.Fields,
				}))
				return
			}
			c.String(http.StatusInternalServerError, "Something went wrong")
			return
		}
		invalidateListing(rdb) // The listing changed
		c.Redirect(http.StatusFound, fmt.Sprintf("/profiles/%d", profile.ID))
	}
}
