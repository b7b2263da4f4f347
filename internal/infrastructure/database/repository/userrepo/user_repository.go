package userrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"djigbo-server/internal/domain/user"
	"djigbo-server/internal/infrastructure/database/dbschema"
)

type UserGormRepository struct {
	db *gorm.DB
}

var _ user.Repository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *gorm.DB) user.Repository {
	return &UserGormRepository{db: db}
}

func (repo *UserGormRepository) GetByAuth0ID(ctx context.Context, auth0UserID string) (*user.Profile, error) {
	var entity dbschema.User
	err := repo.db.WithContext(ctx).
		Where("auth0_user_id = ?", auth0UserID).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by auth0 id: %w", err)
	}
	return entity.EtoD(), nil
}

func (repo *UserGormRepository) Create(ctx context.Context, p *user.Profile) error {
	entity := dbschema.NewSchemaUser(p)
	if err := repo.db.WithContext(ctx).Create(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return user.ErrAlreadyRegistered
		}
		return fmt.Errorf("create user: %w", err)
	}
	*p = *entity.EtoD()
	return nil
}

func (repo *UserGormRepository) Update(ctx context.Context, auth0UserID, nickname string, avatar *string) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&dbschema.User{}).
		Where("auth0_user_id = ?", auth0UserID).
		Updates(map[string]any{
			"nickname":   nickname,
			"avatar":     avatar,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("update user: %w", result.Error)
	}
	return result.RowsAffected, nil
}
