package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yuta-hayashi/linkup/backend/internal/apperrors"
	"github.com/yuta-hayashi/linkup/backend/internal/models"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) (created bool, err error)
	DeleteLike(id, userID uint) error
	GetLikesByPostIDs(postIDs []uint) ([]models.Like, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts the (user, post) edge atomically against the unique
// index: ON CONFLICT DO NOTHING, then a fetch when the edge already existed.
// Concurrent identical requests both end up observing the same single edge.
func (r *PostgresLikeRepository) CreateLike(like *models.Like) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	// Conflict path: load the existing edge so the caller can report it.
	err := r.db.Where("user_id = ? AND post_id = ?", like.UserID, like.PostID).First(like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Inserted-then-removed between our two statements.
			return false, apperrors.New(apperrors.Conflict, "like state changed, retry")
		}
		return false, err
	}
	return false, nil
}

// DeleteLike removes the like with the given id when it belongs to userID.
func (r *PostgresLikeRepository) DeleteLike(id, userID uint) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.New(apperrors.NotFound, "like not found")
	}
	return nil
}

// GetLikesByPostIDs retrieves all likes for the given posts in one query.
func (r *PostgresLikeRepository) GetLikesByPostIDs(postIDs []uint) ([]models.Like, error) {
	var likes []models.Like
	if len(postIDs) == 0 {
		return likes, nil
	}
	if err := r.db.Where("post_id IN ?", postIDs).Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}
