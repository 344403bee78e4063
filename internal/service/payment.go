package service

import (
	"context"
	"errors"
	"fmt"

	"restaurant-orders/internal/client"
	"restaurant-orders/internal/dto"
	"restaurant-orders/internal/model"
	"restaurant-orders/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultCurrency = "usd"

type PaymentService interface {
	// CreateIntent reserves a pending charge with the gateway and returns its
	// client secret. No durable side effect.
	CreateIntent(ctx context.Context, price decimal.Decimal, currency string) (string, error)
	// Settle records a completed charge and clears the matching cart entries.
	// Replaying the same transaction reference returns the already-recorded
	// payment instead of creating a second one.
	Settle(ctx context.Context, input *dto.SettleRequest) (*dto.SettleResponse, error)
	ListByEmail(ctx context.Context, email string) ([]*model.Payment, error)
}

type paymentServiceImpl struct {
	db           *gorm.DB
	stripeClient client.StripeClient
	paymentRepo  repository.PaymentRepository
	cartRepo     repository.CartRepository
}

func NewPaymentService(
	db *gorm.DB,
	stripeClient client.StripeClient,
	paymentRepo repository.PaymentRepository,
	cartRepo repository.CartRepository,
) PaymentService {
	return &paymentServiceImpl{
		db:           db,
		stripeClient: stripeClient,
		paymentRepo:  paymentRepo,
		cartRepo:     cartRepo,
	}
}

// minorUnits converts a major-unit price (5.00) to the gateway's minor
// currency unit (500).
func minorUnits(price decimal.Decimal) int64 {
	return price.Mul(decimal.NewFromInt(100)).IntPart()
}

func (s *paymentServiceImpl) CreateIntent(ctx context.Context, price decimal.Decimal, currency string) (string, error) {
	amount := minorUnits(price)
	if amount < 1 {
		return "", model.ErrInvalidAmount
	}
	if currency == "" {
		currency = defaultCurrency
	}

	resp, err := s.stripeClient.CreateIntent(ctx, amount, currency)
	if err != nil {
		return "", fmt.Errorf("gateway create intent: %w", err)
	}

	return resp.ClientSecret, nil
}

func (s *paymentServiceImpl) Settle(ctx context.Context, input *dto.SettleRequest) (*dto.SettleResponse, error) {
	amount := minorUnits(input.Price)
	if amount < 1 {
		return nil, model.ErrInvalidAmount
	}
	currency := input.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	existing, err := s.paymentRepo.FindByTransactionRef(ctx, input.TransactionID)
	if err == nil {
		return s.replayResponse(ctx, existing)
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("look up transaction reference: %w", err)
	}

	payment := &model.Payment{
		ID:             uuid.NewString(),
		Email:          input.Email,
		Amount:         amount,
		Currency:       currency,
		TransactionRef: input.TransactionID,
	}
	items := make([]*model.PaymentItem, len(input.CartIDs))
	for i, id := range input.CartIDs {
		items[i] = &model.PaymentItem{
			PaymentID:  payment.ID,
			CartItemID: id,
		}
	}

	var removed []uint
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// the payment record goes in before any cart deletion so a cleanup
		// failure can never lose the fact that the charge was settled
		if err := s.paymentRepo.Create(ctx, tx, payment, items); err != nil {
			return fmt.Errorf("store payment: %w", err)
		}

		if len(input.CartIDs) == 0 {
			return nil
		}

		// only the caller's own cart entries are eligible; foreign or
		// already-deleted ids are skipped, not failed
		owned, err := s.cartRepo.FindOwnedIDs(ctx, tx, input.Email, input.CartIDs)
		if err != nil {
			return fmt.Errorf("find settleable cart items: %w", err)
		}
		if len(owned) > 0 {
			if err := s.cartRepo.DeleteOwnedByIDs(ctx, tx, input.Email, owned); err != nil {
				return fmt.Errorf("delete cart items: %w", err)
			}
		}

		removed = owned
		return nil
	})
	if err != nil {
		// a concurrent settlement with the same reference won the insert race
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, ferr := s.paymentRepo.FindByTransactionRef(ctx, input.TransactionID)
			if ferr != nil {
				return nil, fmt.Errorf("find payment after duplicate: %w", ferr)
			}
			return s.replayResponse(ctx, winner)
		}
		return nil, err
	}

	missing := missingIDs(input.CartIDs, removed)

	return &dto.SettleResponse{
		Payment: payment,
		DeletionOutcome: dto.DeletionOutcome{
			Removed:      removed,
			Missing:      missing,
			FullyCleared: len(missing) == 0,
		},
	}, nil
}

func (s *paymentServiceImpl) ListByEmail(ctx context.Context, email string) ([]*model.Payment, error) {
	return s.paymentRepo.ListByEmail(ctx, email)
}

func (s *paymentServiceImpl) replayResponse(ctx context.Context, payment *model.Payment) (*dto.SettleResponse, error) {
	ids, err := s.paymentRepo.GetItemIDs(ctx, payment.ID)
	if err != nil {
		return nil, fmt.Errorf("load settled cart ids: %w", err)
	}

	return &dto.SettleResponse{
		Payment:  payment,
		Replayed: true,
		DeletionOutcome: dto.DeletionOutcome{
			Removed:      ids,
			FullyCleared: true,
		},
	}, nil
}

func missingIDs(requested, removed []uint) []uint {
	got := make(map[uint]bool, len(removed))
	for _, id := range removed {
		got[id] = true
	}

	var missing []uint
	for _, id := range requested {
		if !got[id] {
			missing = append(missing, id)
		}
	}

	return missing
}
