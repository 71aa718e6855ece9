package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yuta-hayashi/linkup/backend/internal/apperrors"
	"github.com/yuta-hayashi/linkup/backend/internal/models"
)

// SocialProfileRepository defines the interface for SNS link operations
type SocialProfileRepository interface {
	CreateSocialProfile(profile *models.SocialProfile) error
	GetSocialProfileByID(id uint) (*models.SocialProfile, error)
	GetSocialProfilesByUserID(userID uint) ([]models.SocialProfile, error)
	UpdateSocialProfile(profile *models.SocialProfile) error
	DeleteSocialProfile(id uint) error
}

// PostgresSocialProfileRepository implements SocialProfileRepository for PostgreSQL
type PostgresSocialProfileRepository struct {
	db *gorm.DB
}

// NewPostgresSocialProfileRepository creates a new PostgresSocialProfileRepository
func NewPostgresSocialProfileRepository(db *gorm.DB) *PostgresSocialProfileRepository {
	return &PostgresSocialProfileRepository{db: db}
}

// CreateSocialProfile creates an SNS link; (user, provider) is unique.
func (r *PostgresSocialProfileRepository) CreateSocialProfile(profile *models.SocialProfile) error {
	if err := r.db.Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.New(apperrors.Conflict, "social profile for this provider already exists")
		}
		return err
	}
	return nil
}

// GetSocialProfileByID retrieves a social profile by ID
func (r *PostgresSocialProfileRepository) GetSocialProfileByID(id uint) (*models.SocialProfile, error) {
	var profile models.SocialProfile
	if err := r.db.First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "social profile not found")
		}
		return nil, err
	}
	return &profile, nil
}

// GetSocialProfilesByUserID retrieves all SNS links for a user
func (r *PostgresSocialProfileRepository) GetSocialProfilesByUserID(userID uint) ([]models.SocialProfile, error) {
	var profiles []models.SocialProfile
	if err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// UpdateSocialProfile updates an existing SNS link
func (r *PostgresSocialProfileRepository) UpdateSocialProfile(profile *models.SocialProfile) error {
	if err := r.db.Save(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.New(apperrors.Conflict, "social profile for this provider already exists")
		}
		return err
	}
	return nil
}

// DeleteSocialProfile removes an SNS link by ID
func (r *PostgresSocialProfileRepository) DeleteSocialProfile(id uint) error {
	res := r.db.Delete(&models.SocialProfile{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.New(apperrors.NotFound, "social profile not found")
	}
	return nil
}
