package repository

import (
	"context"
	"errors"

	"restaurant-orders/internal/model"

	"gorm.io/gorm"
)

type MenuRepository interface {
	Create(ctx context.Context, item *model.MenuItem) error
	FindByID(ctx context.Context, id uint) (*model.MenuItem, error)
	List(ctx context.Context) ([]*model.MenuItem, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type menuRepoImpl struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepoImpl{
		db: db,
	}
}

func (r *menuRepoImpl) Create(ctx context.Context, item *model.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *menuRepoImpl) FindByID(ctx context.Context, id uint) (*model.MenuItem, error) {
	var item model.MenuItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}

	return &item, nil
}

func (r *menuRepoImpl) List(ctx context.Context) ([]*model.MenuItem, error) {
	var items []*model.MenuItem
	err := r.db.WithContext(ctx).Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *menuRepoImpl) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.MenuItem{}).
		Where("id = ?", id).
		Updates(fields)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *menuRepoImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.MenuItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}

	return nil
}
