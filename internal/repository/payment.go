package repository

import (
	"context"
	"errors"

	"restaurant-orders/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, payment *model.Payment, items []*model.PaymentItem) error
	FindByTransactionRef(ctx context.Context, ref string) (*model.Payment, error)
	ListByEmail(ctx context.Context, email string) ([]*model.Payment, error)
	GetItemIDs(ctx context.Context, paymentID string) ([]uint, error)
}

type paymentRepoImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepoImpl{
		db: db,
	}
}

func (r *paymentRepoImpl) Create(ctx context.Context, tx *gorm.DB, payment *model.Payment, items []*model.PaymentItem) error {
	if err := tx.WithContext(ctx).Create(payment).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	return tx.WithContext(ctx).Create(&items).Error
}

func (r *paymentRepoImpl) FindByTransactionRef(ctx context.Context, ref string) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.WithContext(ctx).
		Where("transaction_ref = ?", ref).
		First(&payment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepoImpl) ListByEmail(ctx context.Context, email string) ([]*model.Payment, error) {
	var payments []*model.Payment
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		Find(&payments).Error

	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepoImpl) GetItemIDs(ctx context.Context, paymentID string) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.PaymentItem{}).
		Where("payment_id = ?", paymentID).
		Pluck("cart_item_id", &ids).Error

	if err != nil {
		return nil, err
	}

	return ids, nil
}
