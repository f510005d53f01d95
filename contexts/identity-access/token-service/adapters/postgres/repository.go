package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"taskforge/contexts/identity-access/token-service/domain/entities"
	domainerrors "taskforge/contexts/identity-access/token-service/domain/errors"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Replace runs the delete-all-for-user + insert pair in one transaction so
// a concurrent login never observes two live sessions.
func (r *Repository) Replace(ctx context.Context, fresh entities.RefreshToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("user_id = ?", fresh.UserID).
			Delete(&refreshTokenModel{}).
			Error; err != nil {
			return err
		}
		row := refreshTokenModelFromEntity(fresh)
		return tx.Create(&row).Error
	})
}

// Rotate runs the delete-old + insert-new pair in one transaction. If the
// old row was already consumed by a concurrent rotation the transaction
// fails, keeping the token single-use.
func (r *Repository) Rotate(ctx context.Context, oldToken string, fresh entities.RefreshToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("token = ?", oldToken).
			Delete(&refreshTokenModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Lost a race against a concurrent rotation or logout.
			return domainerrors.ErrTokenRevoked
		}
		row := refreshTokenModelFromEntity(fresh)
		return tx.Create(&row).Error
	})
}

func (r *Repository) FindByToken(ctx context.Context, token string) (entities.RefreshToken, bool, error) {
	var row refreshTokenModel
	err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.RefreshToken{}, false, nil
		}
		return entities.RefreshToken{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&refreshTokenModel{}).
		Error
}

func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", now.UTC()).
		Delete(&refreshTokenModel{})
	return result.RowsAffected, result.Error
}

type refreshTokenModel struct {
	Token     string    `gorm:"column:token;primaryKey"`
	UserID    string    `gorm:"column:user_id"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (refreshTokenModel) TableName() string {
	return "refresh_tokens"
}

func refreshTokenModelFromEntity(item entities.RefreshToken) refreshTokenModel {
	return refreshTokenModel{
		Token:     item.Token,
		UserID:    item.UserID,
		ExpiresAt: item.ExpiresAt.UTC(),
		CreatedAt: item.CreatedAt.UTC(),
	}
}

func (m refreshTokenModel) toEntity() entities.RefreshToken {
	return entities.RefreshToken{
		Token:     m.Token,
		UserID:    m.UserID,
		ExpiresAt: m.ExpiresAt.UTC(),
		CreatedAt: m.CreatedAt.UTC(),
	}
}

// SystemClock satisfies the token service Clock port for runtime wiring.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
