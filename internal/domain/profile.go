package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm" // GORM ORM library
)

// Profile Model
type Profile struct {
	ID            uint      `gorm:"primaryKey"` // Primary key
	ProfileImage  string    `gorm:"not null"`   // Avatar URL, generated when left empty
	Title         string    `gorm:"not null"`   // Candidate headline, e.g. "Frontend developer"
	FullName      string    `gorm:"not null"`   // Candidate name
	Bio           string    // Free-text introduction
	Tags          string    // Comma-separated skill tags
	LinkLinkedIn  string    // Link to LinkedIn profile
	LinkPortfolio string    // Link to personal portfolio
	Liked         bool      `gorm:"default:false"` // Like flag toggled from the listing/detail pages
	UserID        uint      `gorm:"uniqueIndex"`   // Owning user; unique index keeps it one profile per user
	CreatedAt     time.Time // Timestamp of creation
	UpdatedAt     time.Time // Timestamp of last change
}

// BeforeCreate fills in the generated avatar URL when no image was provided
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ProfileImage == "" {
		p.ProfileImage = AvatarURL(p.FullName)
	}
	return nil
}

// AvatarURL builds the dicebear avatar URL for a candidate name
func AvatarURL(name string) string {
	return fmt.Sprintf(
		"https://avatars.dicebear.com/api/micah/%s.svg?mood[]=happy&mood[]=happy&background=%%23e8e8e8",
		url.PathEscape(name),
	)
}

// TagList splits the comma-separated tags column for rendering
func (p *Profile) TagList() []string {
	var tags []string
	for _, t := range strings.Split(p.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// OwnedBy reports whether the session user id matches the owning user.
// Both sides are compared in canonical decimal string form so a string
// session value and the numeric column never produce a false negative.
func (p *Profile) OwnedBy(userID string) bool {
	return userID != "" && userID == strconv.FormatUint(uint64(p.UserID), 10)
}
