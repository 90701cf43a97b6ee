package mapper

import (
	"github.com/HYKY/hyky-services/internal/domain/entity"
	"github.com/HYKY/hyky-services/internal/infrastructure/db/model"
)

func SessionTokenToModel(t *entity.SessionToken) *model.SessionTokenModel {
	if t == nil {
		return nil
	}

	return &model.SessionTokenModel{
		ID:          t.ID,
		Token:       t.Token,
		TokenDigest: entity.TokenDigest(t.Token),
		UserID:      t.UserID,
		ExpiresAt:   t.ExpiresAt,
		IsValid:     t.IsValid,
		CreatedAt:   t.CreatedAt,
	}
}

func SessionTokenFromModel(m *model.SessionTokenModel) *entity.SessionToken {
	if m == nil {
		return nil
	}

	return &entity.SessionToken{
		ID:        m.ID,
		Token:     m.Token,
		UserID:    m.UserID,
		ExpiresAt: m.ExpiresAt,
		IsValid:   m.IsValid,
		CreatedAt: m.CreatedAt,
	}
}

// SessionTokensFromModels converts a slice of rows.
func SessionTokensFromModels(models []model.SessionTokenModel) []*entity.SessionToken {
	tokens := make([]*entity.SessionToken, len(models))
	for i := range models {
		tokens[i] = SessionTokenFromModel(&models[i])
	}
	return tokens
}
