package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yuta-hayashi/linkup/backend/internal/apperrors"
	"github.com/yuta-hayashi/linkup/backend/internal/models"
)

// TagRepository manages the shared tag vocabulary and its links to posts and
// user profiles.
type TagRepository interface {
	AttachTags(owner models.TagOwner, names []string) ([]models.Tag, error)
	ReplaceTags(owner models.TagOwner, names []string) ([]models.Tag, error)
	GetTagsForPosts(postIDs []uint) (map[uint][]models.Tag, error)
	GetTagsForUser(userID uint) ([]models.Tag, error)
}

// PostgresTagRepository implements TagRepository for PostgreSQL
type PostgresTagRepository struct {
	db *gorm.DB
}

// NewPostgresTagRepository creates a new PostgresTagRepository
func NewPostgresTagRepository(db *gorm.DB) *PostgresTagRepository {
	return &PostgresTagRepository{db: db}
}

// NormalizeTagNames trims whitespace, drops empties, dedupes
// case-insensitively keeping the first spelling, and reports over-length
// names per-name.
func NormalizeTagNames(names []string) ([]string, []apperrors.FieldError) {
	var out []string
	var fieldErrs []apperrors.FieldError
	seen := make(map[string]bool)

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		if len([]rune(name)) > models.TagNameMaxLen {
			fieldErrs = append(fieldErrs, apperrors.FieldError{
				Field:   "tags",
				Message: fmt.Sprintf("%q must be at most %d characters", name, models.TagNameMaxLen),
			})
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out, fieldErrs
}

// AttachTags resolves each name to a tag (find-or-create) and links it to the
// owner. Already-linked tags are left alone. The whole batch runs in one
// transaction; a failure mid-list links nothing.
func (r *PostgresTagRepository) AttachTags(owner models.TagOwner, names []string) ([]models.Tag, error) {
	normalized, fieldErrs := NormalizeTagNames(names)
	if len(fieldErrs) > 0 {
		return nil, apperrors.Validation(fieldErrs...)
	}

	var tags []models.Tag
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		tags, txErr = attachTags(tx, owner, normalized)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// ReplaceTags makes the supplied list authoritative: every prior link for the
// owner is removed and the resolved set takes its place. An empty list clears
// all links. Callers distinguish "absent field" themselves and skip the call.
func (r *PostgresTagRepository) ReplaceTags(owner models.TagOwner, names []string) ([]models.Tag, error) {
	normalized, fieldErrs := NormalizeTagNames(names)
	if len(fieldErrs) > 0 {
		return nil, apperrors.Validation(fieldErrs...)
	}

	var tags []models.Tag
	err := r.db.Transaction(func(tx *gorm.DB) error {
		switch owner.Kind {
		case models.TagOwnerPost:
			if err := tx.Where("post_id = ?", owner.ID).Delete(&models.PostTag{}).Error; err != nil {
				return err
			}
		case models.TagOwnerUser:
			if err := tx.Where("user_id = ?", owner.ID).Delete(&models.UserTag{}).Error; err != nil {
				return err
			}
		}
		var txErr error
		tags, txErr = attachTags(tx, owner, normalized)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func attachTags(tx *gorm.DB, owner models.TagOwner, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tag, err := findOrCreateTag(tx, name)
		if err != nil {
			return nil, err
		}
		if err := linkTag(tx, owner, tag.ID); err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

// findOrCreateTag resolves a name against the vocabulary. The unique index
// on name arbitrates concurrent first-creation: the loser re-runs the lookup
// instead of erroring.
func findOrCreateTag(tx *gorm.DB, name string) (*models.Tag, error) {
	var tag models.Tag
	err := tx.Where("LOWER(name) = LOWER(?)", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = models.Tag{Name: name}
	err = tx.Create(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}

	// Lost the creation race; the winner's row must be there now.
	if err := tx.Where("LOWER(name) = LOWER(?)", name).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.Conflict, fmt.Sprintf("tag %q is being modified concurrently", name))
		}
		return nil, err
	}
	return &tag, nil
}

// linkTag creates the join edge unless it already exists; the composite
// unique index makes the insert idempotent.
func linkTag(tx *gorm.DB, owner models.TagOwner, tagID uint) error {
	switch owner.Kind {
	case models.TagOwnerPost:
		edge := models.PostTag{PostID: owner.ID, TagID: tagID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
	case models.TagOwnerUser:
		edge := models.UserTag{UserID: owner.ID, TagID: tagID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
	default:
		return fmt.Errorf("unknown tag owner kind %d", owner.Kind)
	}
}

// GetTagsForPosts loads the tags for a batch of posts keyed by post id.
func (r *PostgresTagRepository) GetTagsForPosts(postIDs []uint) (map[uint][]models.Tag, error) {
	result := make(map[uint][]models.Tag)
	if len(postIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		models.Tag
		PostID uint
	}
	err := r.db.Model(&models.Tag{}).
		Select("tags.*, post_tags.post_id").
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id IN ?", postIDs).
		Order("post_tags.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.PostID] = append(result[row.PostID], row.Tag)
	}
	return result, nil
}

// GetTagsForUser loads the tags linked to a user profile.
func (r *PostgresTagRepository) GetTagsForUser(userID uint) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Model(&models.Tag{}).
		Joins("JOIN user_tags ON user_tags.tag_id = tags.id").
		Where("user_tags.user_id = ?", userID).
		Order("user_tags.id ASC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}
