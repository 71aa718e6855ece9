package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yuta-hayashi/linkup/backend/internal/apperrors"
	"github.com/yuta-hayashi/linkup/backend/internal/models"
)

// FollowRepository defines the interface for follow graph operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	DeleteFollow(id, followerID uint) error
	GetFollowers(userID uint) ([]models.Follow, error)
	GetFollowing(userID uint) ([]models.Follow, error)
	GetFollowingIDs(userID uint) ([]uint, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts the edge. The unique (follower_id, following_id)
// index arbitrates concurrent duplicates: one insert wins, the other
// observes Conflict.
func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) error {
	if err := r.db.Create(follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.New(apperrors.Conflict, "already following this user")
		}
		return err
	}
	return nil
}

// DeleteFollow removes the edge with the given id, but only when the caller
// is its follower.
func (r *PostgresFollowRepository) DeleteFollow(id, followerID uint) error {
	res := r.db.Where("id = ? AND follower_id = ?", id, followerID).Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.New(apperrors.NotFound, "follow not found")
	}
	return nil
}

// GetFollowers returns edges pointing at userID, newest first.
func (r *PostgresFollowRepository) GetFollowers(userID uint) ([]models.Follow, error) {
	var follows []models.Follow
	err := r.db.Where("following_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&follows).Error
	return follows, err
}

// GetFollowing returns edges originating from userID, newest first.
func (r *PostgresFollowRepository) GetFollowing(userID uint) ([]models.Follow, error) {
	var follows []models.Follow
	err := r.db.Where("follower_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&follows).Error
	return follows, err
}

// GetFollowingIDs returns the IDs of everyone userID follows, for the
// timeline's fan-out-on-read set.
func (r *PostgresFollowRepository) GetFollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Pluck("following_id", &ids).Error
	return ids, err
}
