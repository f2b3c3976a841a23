package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"cheki/internal/domain/receipt"
	"cheki/internal/infrastructure/persistence/mappers"
	"cheki/internal/infrastructure/persistence/models"
	"cheki/internal/shared/biztime"
)

// SessionTokenRepository is the gorm-backed append-only token store.
type SessionTokenRepository struct {
	db     *gorm.DB
	mapper mappers.SessionTokenMapper
}

func NewSessionTokenRepository(db *gorm.DB) receipt.TokenRepository {
	return &SessionTokenRepository{
		db:     db,
		mapper: mappers.NewSessionTokenMapper(),
	}
}

// Create persists a new token. The id comes from the auto-increment
// primary key and CreatedAt is stamped here, never taken from the
// caller.
func (r *SessionTokenRepository) Create(ctx context.Context, token *receipt.SessionToken) (*receipt.SessionToken, error) {
	model := r.mapper.ToModel(token)
	model.ID = 0
	model.CreatedAt = biztime.NowUTC()

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to create session token: %w", err)
	}
	return r.mapper.ToDomain(model), nil
}

// GetLatest returns the most recently created token. An empty store is
// a normal outcome and yields (nil, nil).
func (r *SessionTokenRepository) GetLatest(ctx context.Context) (*receipt.SessionToken, error) {
	var model models.SessionTokenModel
	err := r.db.WithContext(ctx).
		Order("id DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest session token: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}
