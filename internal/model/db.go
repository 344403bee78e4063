package model

import "time"

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:128;uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"size:128" json:"name"`
	Role      string    `gorm:"size:16;not null;default:member" json:"role"` // member, admin
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type MenuItem struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:128;not null" json:"name"`
	Category string `gorm:"size:64;index" json:"category"`
	// price in the minor currency unit
	Price     int64     `gorm:"not null" json:"price"`
	Recipe    string    `json:"recipe"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:128;index" json:"email"`
	Rating    int32     `gorm:"not null" json:"rating"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}

type CartItem struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// owner of the pending selection
	Email      string    `gorm:"size:128;index;not null" json:"email"`
	MenuItemID uint      `gorm:"index;not null" json:"menuItemId"`
	Price      int64     `gorm:"not null" json:"price"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Payment struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	Email    string `gorm:"size:128;index;not null" json:"email"`
	Amount   int64  `gorm:"not null" json:"amount"`
	Currency string `gorm:"size:8;not null" json:"currency"`
	// gateway transaction reference, natural dedup key for settlement replays
	TransactionRef string    `gorm:"size:128;uniqueIndex;not null" json:"transactionId"`
	CreatedAt      time.Time `json:"createdAt"`
}

type PaymentItem struct {
	ID uint `gorm:"primaryKey"`
	// FK → payment.id
	PaymentID  string `gorm:"size:36;index;not null"`
	CartItemID uint   `gorm:"not null"`
	CreatedAt  time.Time
}
