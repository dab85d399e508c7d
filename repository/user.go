package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"store-service/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return model.ErrUserExists
	}
	return errors.WithStack(err)
}

func (r *UserRepository) Find(ctx context.Context, id uint) (*model.User, error) {
	return first(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return first(r.db.WithContext(ctx).Where("username = ?", username))
}

func (r *UserRepository) Exists(ctx context.Context, username, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&n).Error
	return n > 0, errors.WithStack(err)
}

func first(q *gorm.DB) (*model.User, error) {
	var u model.User
	err := q.First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &u, nil
}
