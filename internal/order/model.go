package order

import (
	"time"

	"sepet-be/internal/product"
)

// Status is the single fulfillment state machine for finalized orders.
// Transitions only move forward: started -> processing -> completed.
type Status string

const (
	StatusStarted    Status = "started"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusStarted, StatusProcessing, StatusCompleted:
		return true
	}
	return false
}

var next = map[Status]Status{
	StatusStarted:    StatusProcessing,
	StatusProcessing: StatusCompleted,
}

// CanTransition reports whether the fulfillment pipeline allows moving
// from one status to another. Same-state updates are allowed.
func CanTransition(from, to Status) bool {
	return from == to || next[from] == to
}

type Order struct {
	ID                int        `json:"id"`
	UserID            int        `json:"userId"`
	TotalPrice        float64    `json:"totalPrice"`
	IsCart            bool       `json:"isCart"`
	FulfillmentStatus Status     `json:"fulfillmentStatus"`
	TrackingNumber    *string    `json:"trackingNumber"`
	AdminNote         *string    `json:"adminNote"`
	OrderDate         *time.Time `json:"orderDate"`
	Address           *string    `json:"address"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
	Items             []Line     `json:"items,omitempty"`
}

// Line is one order line with its product joined.
type Line struct {
	ID        int         `json:"id"`
	ProductID int         `json:"productId"`
	Quantity  int         `json:"quantity"`
	Product   LineProduct `json:"product"`
}

type LineProduct struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL *string `json:"imageUrl"`
}

// CartLine is a line of the user's open cart with the full product joined.
type CartLine struct {
	ID       int             `json:"id"`
	Quantity int             `json:"quantity"`
	Product  product.Product `json:"product"`
}

// Customer is the order owner as shown in the admin listing.
type Customer struct {
	ID    int     `json:"id"`
	Name  *string `json:"name"`
	Email string  `json:"email"`
}

// AdminOrder is an order with its owner attached.
type AdminOrder struct {
	Order
	User Customer `json:"user"`
}

type CheckoutItem struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// AdminFilter narrows the admin order listing; nil predicates are skipped.
type AdminFilter struct {
	Status     *Status
	NameSearch *string
}
