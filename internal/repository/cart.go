package repository

import (
	"context"
	"errors"

	"restaurant-orders/internal/model"

	"gorm.io/gorm"
)

type CartRepository interface {
	Create(ctx context.Context, item *model.CartItem) error
	ListByEmail(ctx context.Context, email string) ([]*model.CartItem, error)
	Delete(ctx context.Context, id uint) error
	// FindOwnedIDs returns the subset of ids that currently exist in the cart
	// and belong to email.
	FindOwnedIDs(ctx context.Context, tx *gorm.DB, email string, ids []uint) ([]uint, error)
	// DeleteOwnedByIDs removes only cart items owned by email.
	DeleteOwnedByIDs(ctx context.Context, tx *gorm.DB, email string, ids []uint) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) Create(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartRepoImpl) ListByEmail(ctx context.Context, email string) ([]*model.CartItem, error) {
	var items []*model.CartItem
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartRepoImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.CartItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *cartRepoImpl) FindOwnedIDs(ctx context.Context, tx *gorm.DB, email string, ids []uint) ([]uint, error) {
	var owned []uint
	err := tx.WithContext(ctx).Model(&model.CartItem{}).
		Where("email = ? AND id IN ?", email, ids).
		Pluck("id", &owned).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return owned, nil
}

func (r *cartRepoImpl) DeleteOwnedByIDs(ctx context.Context, tx *gorm.DB, email string, ids []uint) error {
	return tx.WithContext(ctx).
		Where("email = ? AND id IN ?", email, ids).
		Delete(&model.CartItem{}).Error
}
