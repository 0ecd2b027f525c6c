package storefront

import "time"

// UserProfile is the authenticated user's profile as served by GET /users/me.
type UserProfile struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// CartLine is one product entry in the user's cart. UnitPrice is frozen at
// add-time; a later catalog price change never rewrites it. The wire keys
// createAt/updateAt follow the server's cart payload.
type CartLine struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"productId"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unitPrice"`
	CreatedAt time.Time `json:"createAt"`
	UpdatedAt time.Time `json:"updateAt"`
}

// Placeholder reports whether the line still carries a locally synthesized
// identifier pending server assignment. Placeholder ids are negative so they
// can never collide with server-assigned ones.
func (l CartLine) Placeholder() bool { return l.ID < 0 }

// Tag is a short product label.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductSummary is a catalog entry fetched in bulk from GET /products.
type ProductSummary struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	PromotionID      *int64  `json:"promotionId"`
	ImageURL         string  `json:"imageUrl"`
	CategoryID       int64   `json:"categoryId"`
	InStock          int     `json:"inStock"`
	Rating           float64 `json:"rating"`
	SoldCount        int     `json:"soldCount"`
	ShortDescription string  `json:"shortDescription"`
	Tags             []Tag   `json:"tags"`
}

// Category groups catalog entries.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Promotion is a discount campaign referenced by ProductSummary.PromotionID.
type Promotion struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	DiscountRate float64 `json:"discountRate"`
}

// Order is a placed order as served by GET /orders/me.
type Order struct {
	ID         int64     `json:"id"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"totalPrice"`
	CreatedAt  time.Time `json:"createAt"`
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"orderId"`
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}
