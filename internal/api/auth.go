package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"strings"  // Form value trimming

	"github.com/SarahOester/AWP-Exam-assignment/internal/repository" // Data access
	"github.com/SarahOester/AWP-Exam-assignment/internal/session"    // Session cookie manager

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Messages surfaced on the auth forms
const (
	loginErrorMessage = "User was not found or password didn't match" // Same text for unknown user and wrong password
	minPasswordLength = 8                                             // Minimum plaintext password length
)

// logIn establishes an authenticated session for the user and redirects home
func logIn(c *gin.Context, sm *session.Manager, userID uint) error {
	s := session.New()
	s.Set("userId", strconv.FormatUint(uint64(userID), 10)) // Canonical string form of the user id
	if err := sm.Commit(c, s); err != nil {
		return err
	}
	c.Redirect(http.StatusFound, "/")
	return nil
}

// LoginFormHandler renders the login form, or the logged-in state when the
// visitor already has a session
func LoginFormHandler(sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sm.Get(c)
		c.HTML(http.StatusOK, "login.html", gin.H{
			"LoggedIn": s.UserID() != "", // Shows the logout button instead of the form
			"UserID":   s.UserID(),
		})
	}
}

// LoginHandler authenticates a user and sets the session cookie
func LoginHandler(db *gorm.DB, sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := strings.TrimSpace(c.PostForm("username"))
		password := c.PostForm("password") // Passwords are compared as submitted

		user, err := repository.FindUserByUsername(db, username)
		if err == nil {
			err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
		}
		if err != nil {
			// Unknown username and wrong password get the same message,
			// so the form cannot be used to enumerate users
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": loginErrorMessage})
			return
		}
		if err := logIn(c, sm, user.ID); err != nil {
			c.String(http.StatusInternalServerError, "Something went wrong")
			return
		}
		// Log successful login
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // User ID
			"username": user.Username, // Username
		}).Info("User logged in")
	}
}

// RegisterFormHandler renders the registration form
func RegisterFormHandler(sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "register.html", gin.H{
			"LoggedIn": sm.Get(c).UserID() != "",
			"Username": "",
		})
	}
}

// RegisterHandler validates the registration form, creates the user and
// logs them in
func RegisterHandler(db *gorm.DB, sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := strings.TrimSpace(c.PostForm("username"))
		password := c.PostForm("password") // Whitespace is significant in passwords
		repeat := c.PostForm("repeatPassword")

		// rerender re-renders the form with an error and the submitted username
		rerender := func(msg string) {
			c.HTML(http.StatusBadRequest, "register.html", gin.H{
				"Error":    msg,
				"Username": username,
			})
		}
		// Password and confirmation must match before anything is persisted
		if password != repeat {
			rerender("Passwords don't match")
			return
		}
		// Enforce the minimum password length on the plaintext
		if len(password) < minPasswordLength {
			rerender("Password must be at least 8 characters long")
			return
		}
		user, err := repository.CreateUser(db, username, password)
		if err != nil {
			var vErr *repository.ValidationError
			switch {
			case errors.Is(err, repository.ErrDuplicateUsername):
				rerender("Username already exists")
			case errors.As(err, &vErr):
				rerender(vErr.Error())
			default:
				logrus.WithFields(logrus.Fields{
					"username": username,    // Username
					"error":    err.Error(), // Error message
				}).Error("Registration failed")
				c.String(http.StatusInternalServerError, "Something went wrong")
			}
			return
		}
		if err := logIn(c, sm, user.ID); err != nil {
			c.String(http.StatusInternalServerError, "Something went wrong")
			return
		}
		// Log successful registration
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // User ID
			"username": user.Username, // Username
		}).Info("User registered")
	}
}

// LogoutHandler clears the session cookie and redirects to the login page
func LogoutHandler(sm *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sm.Destroy(c)
		c.Redirect(http.StatusFound, "/login")
	}
}
