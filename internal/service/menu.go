package service

import (
	"context"

	"restaurant-orders/internal/model"
	"restaurant-orders/internal/repository"
)

type MenuService interface {
	ListMenu(ctx context.Context) ([]*model.MenuItem, error)
	GetMenuItem(ctx context.Context, id uint) (*model.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *model.MenuItem) error
	UpdateMenuItem(ctx context.Context, id uint, fields map[string]interface{}) error
	DeleteMenuItem(ctx context.Context, id uint) error

	ListReviews(ctx context.Context) ([]*model.Review, error)
	AddReview(ctx context.Context, review *model.Review) error
}

type menuServiceImpl struct {
	menuRepo   repository.MenuRepository
	reviewRepo repository.ReviewRepository
}

func NewMenuService(
	menuRepo repository.MenuRepository,
	reviewRepo repository.ReviewRepository,
) MenuService {
	return &menuServiceImpl{
		menuRepo:   menuRepo,
		reviewRepo: reviewRepo,
	}
}

func (s *menuServiceImpl) ListMenu(ctx context.Context) ([]*model.MenuItem, error) {
	return s.menuRepo.List(ctx)
}

func (s *menuServiceImpl) GetMenuItem(ctx context.Context, id uint) (*model.MenuItem, error) {
	return s.menuRepo.FindByID(ctx, id)
}

func (s *menuServiceImpl) CreateMenuItem(ctx context.Context, item *model.MenuItem) error {
	return s.menuRepo.Create(ctx, item)
}

func (s *menuServiceImpl) UpdateMenuItem(ctx context.Context, id uint, fields map[string]interface{}) error {
	return s.menuRepo.Update(ctx, id, fields)
}

func (s *menuServiceImpl) DeleteMenuItem(ctx context.Context, id uint) error {
	return s.menuRepo.Delete(ctx, id)
}

func (s *menuServiceImpl) ListReviews(ctx context.Context) ([]*model.Review, error) {
	return s.reviewRepo.List(ctx)
}

func (s *menuServiceImpl) AddReview(ctx context.Context, review *model.Review) error {
	return s.reviewRepo.Create(ctx, review)
}
