package dto

import (
	"restaurant-orders/internal/model"

	"github.com/shopspring/decimal"
)

type TokenRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type RegisterRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type RegisterResponse struct {
	Message    string `json:"message,omitempty"`
	InsertedID *uint  `json:"insertedId"`
}

type AdminCheckResponse struct {
	Admin bool `json:"admin"`
}

type ChargeIntentRequest struct {
	// price in major units, e.g. 5.00
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
}

type ChargeIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type SettleRequest struct {
	Email         string          `json:"email"`
	Price         decimal.Decimal `json:"price"`
	Currency      string          `json:"currency"`
	TransactionID string          `json:"transactionId"`
	CartIDs       []uint          `json:"cartIds"`
}

// DeletionOutcome reports which of the requested cart items were removed.
// Missing ids were either already settled by a concurrent request or never
// belonged to the paying identity.
type DeletionOutcome struct {
	Removed      []uint `json:"removed"`
	Missing      []uint `json:"missing"`
	FullyCleared bool   `json:"fullyCleared"`
}

type SettleResponse struct {
	Payment         *model.Payment  `json:"paymentResult"`
	DeletionOutcome DeletionOutcome `json:"deletionOutcome"`
	Replayed        bool            `json:"replayed,omitempty"`
}

type AddCartRequest struct {
	Email      string          `json:"email"`
	MenuItemID uint            `json:"menuItemId"`
	Price      decimal.Decimal `json:"price"`
}

type CreateMenuItemRequest struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Recipe   string          `json:"recipe"`
}

type UpdateMenuItemRequest struct {
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Price    *decimal.Decimal `json:"price"`
	Recipe   string           `json:"recipe"`
}

type CreateReviewRequest struct {
	Email   string `json:"email"`
	Rating  int32  `json:"rating"`
	Details string `json:"details"`
}
