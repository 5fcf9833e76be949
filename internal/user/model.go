package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         *string   `json:"name"`
	Phone        *string   `json:"phone"`
	Address      *string   `json:"address"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile is the user together with the full order history graph,
// as returned by login and the profile endpoint.
type Profile struct {
	User
	Orders []OrderHistory `json:"orders"`
}

// OrderHistory is one historical order with its lines and products.
type OrderHistory struct {
	ID                int                `json:"id"`
	TotalPrice        float64            `json:"totalPrice"`
	IsCart            bool               `json:"isCart"`
	FulfillmentStatus string             `json:"fulfillmentStatus"`
	TrackingNumber    *string            `json:"trackingNumber"`
	AdminNote         *string            `json:"adminNote"`
	OrderDate         *time.Time         `json:"orderDate"`
	Address           *string            `json:"address"`
	Items             []OrderHistoryItem `json:"items"`
}

type OrderHistoryItem struct {
	ID       int          `json:"id"`
	Quantity int          `json:"quantity"`
	Product  ProductBrief `json:"product"`
}

type ProductBrief struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL *string `json:"imageUrl"`
}

type RegisterParams struct {
	Email    string
	Password string
	Name     *string
	Phone    *string
	Address  *string
}

type UpdateProfileParams struct {
	UserID  int
	Name    *string
	Phone   *string
	Address *string
}
