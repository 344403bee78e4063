package repository

import (
	"context"

	"restaurant-orders/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	List(ctx context.Context) ([]*model.Review, error)
}

type reviewRepoImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepoImpl{
		db: db,
	}
}

func (r *reviewRepoImpl) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepoImpl) List(ctx context.Context) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return nil, err
	}

	return reviews, nil
}
