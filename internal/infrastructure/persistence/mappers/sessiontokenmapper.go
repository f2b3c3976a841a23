package mappers

import (
	"cheki/internal/domain/receipt"
	"cheki/internal/infrastructure/persistence/models"
)

// SessionTokenMapper handles the conversion between SessionToken domain
// entities and persistence models.
type SessionTokenMapper interface {
	// ToModel converts a domain entity to a persistence model.
	ToModel(entity *receipt.SessionToken) *models.SessionTokenModel

	// ToDomain converts a persistence model to a domain entity.
	ToDomain(model *models.SessionTokenModel) *receipt.SessionToken
}

// SessionTokenMapperImpl is the concrete implementation of SessionTokenMapper.
type SessionTokenMapperImpl struct{}

// NewSessionTokenMapper creates a new SessionTokenMapper.
func NewSessionTokenMapper() SessionTokenMapper {
	return &SessionTokenMapperImpl{}
}

// ToModel converts a domain entity to a persistence model.
func (m *SessionTokenMapperImpl) ToModel(entity *receipt.SessionToken) *models.SessionTokenModel {
	if entity == nil {
		return nil
	}
	return &models.SessionTokenModel{
		ID:              entity.ID,
		SessionID:       entity.SessionID,
		RefreshToken:    entity.RefreshToken,
		ObtainedViaCode: entity.ObtainedViaCode,
		CreatedAt:       entity.CreatedAt,
	}
}

// ToDomain converts a persistence model to a domain entity.
func (m *SessionTokenMapperImpl) ToDomain(model *models.SessionTokenModel) *receipt.SessionToken {
	if model == nil {
		return nil
	}
	return &receipt.SessionToken{
		ID:              model.ID,
		SessionID:       model.SessionID,
		RefreshToken:    model.RefreshToken,
		ObtainedViaCode: model.ObtainedViaCode,
		CreatedAt:       model.CreatedAt,
	}
}
