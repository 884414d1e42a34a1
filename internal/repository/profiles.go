package repository

import (
	"errors"  // Error matching
	"strings" // Query normalization

	"github.com/SarahOester/AWP-Exam-assignment/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// ProfileFields is the editable subset of a profile submitted by the
// create and update forms
type ProfileFields struct {
	Title         string // Candidate headline
	FullName      string // Candidate name
	Bio           string // Free-text introduction
	Tags          string // Comma-separated skill tags
	LinkLinkedIn  string // Link to LinkedIn profile
	LinkPortfolio string // Link to personal portfolio
}

// validate checks the required fields and collects per-field messages
func (f ProfileFields) validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(f.Title) == "" {
		fields["title"] = "A title is required"
	}
	if strings.TrimSpace(f.FullName) == "" {
		fields["fullName"] = "Firstname is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// FindProfileByID fetches a profile by its route id, ErrNotFound when unknown
func FindProfileByID(db *gorm.DB, id string) (*domain.Profile, error) {
	var profile domain.Profile
	if err := db.Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// FindProfileByOwner fetches the profile owned by a user, ErrNotFound when
// the user has none yet
func FindProfileByOwner(db *gorm.DB, ownerID uint) (*domain.Profile, error) {
	var profile domain.Profile
	if err := db.Where("user_id = ?", ownerID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// CreateProfile validates and inserts a new profile for ownerID. The one
// profile per user rule is enforced by the unique index on user_id, so two
// concurrent creations cannot both succeed.
func CreateProfile(db *gorm.DB, fields ProfileFields, ownerID uint) (*domain.Profile, error) {
	if err := fields.validate(); err != nil {
		return nil, err
	}
	profile := domain.Profile{
		Title:         strings.TrimSpace(fields.Title),    // Candidate headline
		FullName:      strings.TrimSpace(fields.FullName), // Candidate name
		Bio:           fields.Bio,                         // Free-text introduction
		Tags:          fields.Tags,                        // Comma-separated skill tags
		LinkLinkedIn:  fields.LinkLinkedIn,                // LinkedIn link
		LinkPortfolio: fields.LinkPortfolio,               // Portfolio link
		UserID:        ownerID,                            // Owning user
	}
	if err := db.Create(&profile).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrDuplicateProfile
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile overwrites the six editable fields of a profile.
// Ownership must have been verified by the caller before invoking.
func UpdateProfile(db *gorm.DB, id uint, fields ProfileFields) error {
	if err := fields.validate(); err != nil {
		return err
	}
	res := db.Model(&domain.Profile{}).Where("id = ?", id).Updates(map[string]any{
		"title":          strings.TrimSpace(fields.Title),
		"full_name":      strings.TrimSpace(fields.FullName),
		"bio":            fields.Bio,
		"tags":           fields.Tags,
		"link_linked_in": fields.LinkLinkedIn,
		"link_portfolio": fields.LinkPortfolio,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProfile deletes a profile by id.
// Ownership must have been verified by the caller before invoking.
func DeleteProfile(db *gorm.DB, id uint) error {
	res := db.Delete(&domain.Profile{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleLike flips the liked flag in a single conditional update, so
// concurrent toggles cannot lose each other's write
func ToggleLike(db *gorm.DB, id uint) error {
	res := db.Model(&domain.Profile{}).Where("id = ?", id).Update("liked", gorm.Expr("NOT liked"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// sortColumns maps the public sort names onto database columns
var sortColumns = map[string]string{
	"title":     "title",      // Ascending lexicographic title order
	"updatedAt": "updated_at", // Most recently edited last
	"like":      "liked",      // Unliked first
}

// resolveSort whitelists the sort parameter, falling back to creation order
func resolveSort(sort string) string {
	if col, ok := sortColumns[sort]; ok {
		return col + " asc"
	}
	return "created_at asc"
}

// SearchProfiles lists profiles matching a free-text query, sorted by one
// of the whitelisted fields. An empty query matches all profiles; a
// non-empty query is a case-insensitive substring match across title,
// full name and tags.
func SearchProfiles(db *gorm.DB, query, sort string) ([]domain.Profile, error) {
	tx := db.Model(&domain.Profile{})
	if q := strings.TrimSpace(query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		tx = tx.Where(
			"LOWER(title) LIKE ? OR LOWER(full_name) LIKE ? OR LOWER(tags) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	var profiles []domain.Profile
	if err := tx.Order(resolveSort(sort)).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
