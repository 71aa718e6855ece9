package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yuta-hayashi/linkup/backend/internal/apperrors"
	"github.com/yuta-hayashi/linkup/backend/internal/models"
)

// MessageRepository defines the interface for message data operations
type MessageRepository interface {
	CreateMessage(message *models.Message) error
	GetMessagesForUser(userID uint) ([]models.Message, error)
	GetThread(userID, partnerID uint) ([]models.Message, error)
	MarkRead(id, recipientID uint) (*models.Message, error)
}

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

// CreateMessage creates a new message
func (r *PostgresMessageRepository) CreateMessage(message *models.Message) error {
	return r.db.Create(message).Error
}

// GetMessagesForUser returns every message the user sent or received, newest
// first. The conversation grouping depends on this order: the first message
// seen per correspondent is that conversation's latest.
func (r *PostgresMessageRepository) GetMessagesForUser(userID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// GetThread returns the full bilateral history between two users, oldest
// first.
func (r *PostgresMessageRepository) GetThread(userID, partnerID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where(
		"(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
		userID, partnerID, partnerID, userID,
	).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkRead flips the read flag, but only when recipientID is the message's
// recipient. The sender marking their own message read is NotFound, not a
// silent no-op.
func (r *PostgresMessageRepository) MarkRead(id, recipientID uint) (*models.Message, error) {
	res := r.db.Model(&models.Message{}).
		Where("id = ? AND to_user_id = ?", id, recipientID).
		Update("read", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.New(apperrors.NotFound, "message not found")
	}

	var message models.Message
	if err := r.db.First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "message not found")
		}
		return nil, err
	}
	return &message, nil
}
