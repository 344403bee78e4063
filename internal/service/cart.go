package service

import (
	"context"

	"restaurant-orders/internal/model"
	"restaurant-orders/internal/repository"
)

type CartService interface {
	ListByEmail(ctx context.Context, email string) ([]*model.CartItem, error)
	Add(ctx context.Context, item *model.CartItem) error
	Remove(ctx context.Context, id uint) error
}

type cartServiceImpl struct {
	cartRepo repository.CartRepository
}

func NewCartService(
	cartRepo repository.CartRepository,
) CartService {
	return &cartServiceImpl{
		cartRepo: cartRepo,
	}
}

func (s *cartServiceImpl) ListByEmail(ctx context.Context, email string) ([]*model.CartItem, error) {
	return s.cartRepo.ListByEmail(ctx, email)
}

func (s *cartServiceImpl) Add(ctx context.Context, item *model.CartItem) error {
	return s.cartRepo.Create(ctx, item)
}

func (s *cartServiceImpl) Remove(ctx context.Context, id uint) error {
	return s.cartRepo.Delete(ctx, id)
}
