package service

import (
	"context"
	"errors"
	"fmt"

	"restaurant-orders/internal/model"
	"restaurant-orders/internal/repository"

	"gorm.io/gorm"
)

type UserService interface {
	// Register creates the identity record on first registration. A duplicate
	// registration by email is a no-op reporting the existing record.
	Register(ctx context.Context, email, name string) (*model.User, bool, error)
	List(ctx context.Context) ([]*model.User, error)
	// GetRole reads the identity's current role from the store. Callers must
	// not cache the result, a demotion has to take effect on the next check.
	GetRole(ctx context.Context, email string) (string, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
	Promote(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type userServiceImpl struct {
	userRepo repository.UserRepository
}

func NewUserService(
	userRepo repository.UserRepository,
) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, email, name string) (*model.User, bool, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, false, fmt.Errorf("find user by email: %w", err)
	}

	user := &model.User{
		Email: email,
		Name:  name,
		Role:  model.RoleMember,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a concurrent first-registration race, report the winner
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, ferr := s.userRepo.FindByEmail(ctx, email)
			if ferr != nil {
				return nil, false, fmt.Errorf("find user after duplicate: %w", ferr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("create user: %w", err)
	}

	return user, true, nil
}

func (s *userServiceImpl) List(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userServiceImpl) GetRole(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	return user.Role, nil
}

func (s *userServiceImpl) IsAdmin(ctx context.Context, email string) (bool, error) {
	role, err := s.GetRole(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return role == model.RoleAdmin, nil
}

func (s *userServiceImpl) Promote(ctx context.Context, id uint) error {
	return s.userRepo.SetRole(ctx, id, model.RoleAdmin)
}

func (s *userServiceImpl) Delete(ctx context.Context, id uint) error {
	return s.userRepo.Delete(ctx, id)
}
