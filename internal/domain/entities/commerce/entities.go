// Package commerce defines the core commerce entities: products, orders,
// users and coupons.
package commerce

import "time"

// Product is a catalog item.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Photo     string    `json:"photo"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderItem is a single product line within an order.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Photo     string  `json:"photo"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// ShippingInfo is the delivery address attached to an order.
type ShippingInfo struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	PinCode string `json:"pinCode"`
}

// Order is a placed order with its monetary breakdown and status.
type Order struct {
	ID              string       `json:"id"`
	UserID          string       `json:"userId"`
	ShippingInfo    ShippingInfo `json:"shippingInfo"`
	Items           []OrderItem  `json:"items"`
	Subtotal        float64      `json:"subtotal"`
	Tax             float64      `json:"tax"`
	ShippingCharges float64      `json:"shippingCharges"`
	Discount        float64      `json:"discount"`
	Total           float64      `json:"total"`
	Status          OrderStatus  `json:"status"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// User roles.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "user"
)

// User is a registered shopper or admin. The ID is assigned by the external
// auth provider, not generated locally.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Photo     string    `json:"photo"`
	Gender    string    `json:"gender"`
	Role      string    `json:"role"`
	DOB       time.Time `json:"dob"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AgeAt returns the user's age in whole years at the reference time.
func (u *User) AgeAt(ref time.Time) int {
	age := ref.Year() - u.DOB.Year()
	// Birthday not reached yet this year.
	if ref.Month() < u.DOB.Month() ||
		(ref.Month() == u.DOB.Month() && ref.Day() < u.DOB.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// Age returns the user's current age in whole years.
func (u *User) Age() int {
	return u.AgeAt(time.Now().UTC())
}

// Coupon is a discount code redeemable at checkout.
type Coupon struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}
