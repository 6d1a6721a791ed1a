package persistent

import (
	"context"
	"errors"

	"consumed/pkg/models"
	"consumed/services/feed/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	// EnsureUser inserts the profile unless a row with the same id exists.
	// created reports whether this call inserted it.
	EnsureUser(ctx context.Context, user entity.AppUser) (created bool, err error)
	GetByID(ctx context.Context, id string) (*entity.AppUser, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) EnsureUser(ctx context.Context, user entity.AppUser) (bool, error) {
	userModel := ToUserModel(user)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(userModel)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.AppUser, error) {
	var userModel models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user := ToUserEntity(&userModel)
	return &user, nil
}
