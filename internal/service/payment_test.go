package service

import (
	"context"
	"errors"
	"testing"

	"restaurant-orders/internal/client"
	"restaurant-orders/internal/dto"
	"restaurant-orders/internal/model"
	"restaurant-orders/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type mockStripeClient struct {
	createIntentFn func(ctx context.Context, amount int64, currency string) (*client.IntentResponse, error)
}

func (m *mockStripeClient) CreateIntent(ctx context.Context, amount int64, currency string) (*client.IntentResponse, error) {
	if m.createIntentFn != nil {
		return m.createIntentFn(ctx, amount, currency)
	}
	return &client.IntentResponse{IntentID: "pi_test", ClientSecret: "cs_test"}, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// a pooled :memory: connection would be a different empty database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.CartItem{}, &model.Payment{}, &model.PaymentItem{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func newTestPaymentService(t *testing.T, stripe client.StripeClient) (PaymentService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	return NewPaymentService(
		db,
		stripe,
		repository.NewPaymentRepository(db),
		repository.NewCartRepository(db),
	), db
}

func seedCartItem(t *testing.T, db *gorm.DB, email string, price int64) uint {
	t.Helper()

	item := &model.CartItem{Email: email, MenuItemID: 1, Price: price}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("seed cart item: %v", err)
	}
	return item.ID
}

func TestCreateIntentRejectsNonPositiveAmount(t *testing.T) {
	svc, _ := newTestPaymentService(t, &mockStripeClient{
		createIntentFn: func(context.Context, int64, string) (*client.IntentResponse, error) {
			t.Fatal("gateway must not be called for an invalid amount")
			return nil, nil
		},
	})

	_, err := svc.CreateIntent(context.Background(), decimal.Zero, "usd")
	if !errors.Is(err, model.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestCreateIntentConvertsToMinorUnits(t *testing.T) {
	var gotAmount int64
	var gotCurrency string
	svc, _ := newTestPaymentService(t, &mockStripeClient{
		createIntentFn: func(_ context.Context, amount int64, currency string) (*client.IntentResponse, error) {
			gotAmount, gotCurrency = amount, currency
			return &client.IntentResponse{ClientSecret: "cs_500"}, nil
		},
	})

	secret, err := svc.CreateIntent(context.Background(), decimal.RequireFromString("5.00"), "")
	if err != nil {
		t.Fatalf("create intent failed: %v", err)
	}
	if gotAmount != 500 {
		t.Fatalf("expected amount 500, got %d", gotAmount)
	}
	if gotCurrency != "usd" {
		t.Fatalf("expected default currency usd, got %s", gotCurrency)
	}
	if secret != "cs_500" {
		t.Fatalf("expected client secret cs_500, got %s", secret)
	}
}

func TestSettleRemovesExactlyTheOwnedItems(t *testing.T) {
	svc, db := newTestPaymentService(t, &mockStripeClient{})

	a := seedCartItem(t, db, "alice@example.com", 300)
	b := seedCartItem(t, db, "alice@example.com", 200)
	keep := seedCartItem(t, db, "alice@example.com", 700)

	result, err := svc.Settle(context.Background(), &dto.SettleRequest{
		Email:         "alice@example.com",
		Price:         decimal.RequireFromString("5.00"),
		TransactionID: "pi_abc",
		CartIDs:       []uint{a, b},
	})
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if !result.DeletionOutcome.FullyCleared {
		t.Fatalf("expected fully cleared outcome, got %+v", result.DeletionOutcome)
	}
	if len(result.DeletionOutcome.Removed) != 2 {
		t.Fatalf("expected 2 removed ids, got %v", result.DeletionOutcome.Removed)
	}

	var remaining []model.CartItem
	if err := db.Find(&remaining).Error; err != nil {
		t.Fatalf("list cart: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != keep {
		t.Fatalf("expected only item %d to remain, got %+v", keep, remaining)
	}

	var payments []model.Payment
	if err := db.Find(&payments).Error; err != nil {
		t.Fatalf("list payments: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("expected exactly one payment record, got %d", len(payments))
	}
	if payments[0].Amount != 500 || payments[0].TransactionRef != "pi_abc" {
		t.Fatalf("unexpected payment record: %+v", payments[0])
	}
}

func TestSettleReplayDoesNotDuplicatePayment(t *testing.T) {
	svc, db := newTestPaymentService(t, &mockStripeClient{})

	a := seedCartItem(t, db, "alice@example.com", 300)

	req := &dto.SettleRequest{
		Email:         "alice@example.com",
		Price:         decimal.RequireFromString("3.00"),
		TransactionID: "pi_replay",
		CartIDs:       []uint{a},
	}

	first, err := svc.Settle(context.Background(), req)
	if err != nil {
		t.Fatalf("first settle failed: %v", err)
	}

	second, err := svc.Settle(context.Background(), req)
	if err != nil {
		t.Fatalf("settle replay failed: %v", err)
	}
	if !second.Replayed {
		t.Fatal("expected replayed response")
	}
	if first.Payment.ID != second.Payment.ID {
		t.Fatalf("expected same payment, got %s and %s", first.Payment.ID, second.Payment.ID)
	}

	var count int64
	if err := db.Model(&model.Payment{}).Count(&count).Error; err != nil {
		t.Fatalf("count payments: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one payment record after replay, got %d", count)
	}
}

func TestSettleReportsAlreadyAbsentItems(t *testing.T) {
	svc, db := newTestPaymentService(t, &mockStripeClient{})

	a := seedCartItem(t, db, "alice@example.com", 300)
	// b was already removed by a concurrent settlement
	b := a + 100

	result, err := svc.Settle(context.Background(), &dto.SettleRequest{
		Email:         "alice@example.com",
		Price:         decimal.RequireFromString("3.00"),
		TransactionID: "pi_partial",
		CartIDs:       []uint{a, b},
	})
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if result.DeletionOutcome.FullyCleared {
		t.Fatal("expected partial outcome")
	}
	if len(result.DeletionOutcome.Removed) != 1 || result.DeletionOutcome.Removed[0] != a {
		t.Fatalf("expected only %d removed, got %v", a, result.DeletionOutcome.Removed)
	}
	if len(result.DeletionOutcome.Missing) != 1 || result.DeletionOutcome.Missing[0] != b {
		t.Fatalf("expected %d reported missing, got %v", b, result.DeletionOutcome.Missing)
	}

	var count int64
	if err := db.Model(&model.Payment{}).Count(&count).Error; err != nil {
		t.Fatalf("count payments: %v", err)
	}
	if count != 1 {
		t.Fatalf("partial cleanup must still record the payment, got %d records", count)
	}
}

func TestSettleNeverDeletesForeignCartItems(t *testing.T) {
	svc, db := newTestPaymentService(t, &mockStripeClient{})

	mine := seedCartItem(t, db, "alice@example.com", 300)
	theirs := seedCartItem(t, db, "bob@example.com", 900)

	result, err := svc.Settle(context.Background(), &dto.SettleRequest{
		Email:         "alice@example.com",
		Price:         decimal.RequireFromString("3.00"),
		TransactionID: "pi_scope",
		CartIDs:       []uint{mine, theirs},
	})
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if len(result.DeletionOutcome.Missing) != 1 || result.DeletionOutcome.Missing[0] != theirs {
		t.Fatalf("expected foreign id %d reported missing, got %v", theirs, result.DeletionOutcome.Missing)
	}

	var kept model.CartItem
	if err := db.First(&kept, theirs).Error; err != nil {
		t.Fatalf("foreign cart item must survive settlement: %v", err)
	}
}

func TestSettleRejectsNonPositiveAmount(t *testing.T) {
	svc, _ := newTestPaymentService(t, &mockStripeClient{})

	_, err := svc.Settle(context.Background(), &dto.SettleRequest{
		Email:         "alice@example.com",
		Price:         decimal.Zero,
		TransactionID: "pi_zero",
	})
	if !errors.Is(err, model.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}
