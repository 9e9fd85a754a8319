package domain

import "time"

// Prices are kept in minor currency units (centimos) so totals add up
// without floating point drift.

type Dish struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       int64      `json:"price"`
	ImageURL    string     `json:"image_url"`
	Category    string     `json:"category"`
	Featured    bool       `json:"featured"`
	Popular     bool       `json:"popular"`
	Promotion   *Promotion `json:"promotion,omitempty"`
	AvgRating   float64    `json:"avg_rating"`
	ReviewCount int        `json:"review_count"`
	CreatedAt   time.Time  `json:"created_at"`
}

type Promotion struct {
	Discount int    `json:"discount"`
	Label    string `json:"label,omitempty"`
}

type CartItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image,omitempty"`
}

type CustomerInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes,omitempty"`
}

type DeliveryLocation struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Fee           int64  `json:"fee"`
	EstimatedTime string `json:"estimated_time"`
}

type PaymentMethod struct {
	ID      string                 `json:"id"`
	Name    string                 `json:"name"`
	Icon    string                 `json:"icon"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type Order struct {
	ID            string       `json:"id"`
	Items         []CartItem   `json:"items"`
	CustomerInfo  CustomerInfo `json:"customer_info"`
	Subtotal      int64        `json:"subtotal"`
	DeliveryFee   int64        `json:"delivery_fee"`
	Total         int64        `json:"total"`
	Status        string       `json:"status"`
	PaymentStatus string       `json:"payment_status"`
	PaymentMethod string       `json:"payment_method"`
	Location      string       `json:"location"`
	CreatedAt     time.Time    `json:"created_at"`
}

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	OrderID   string    `json:"order_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Review struct {
	ID        int       `json:"id"`
	DishID    string    `json:"dish_id"`
	OrderID   string    `json:"order_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type CompanySettings struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	OpeningHours string `json:"opening_hours"`
}

// OrderEvent is the message shape published to the orders change feed.
type OrderEvent struct {
	EventID      string    `json:"event_id"`
	Type         string    `json:"type"`
	OrderID      string    `json:"order_id"`
	CustomerInfo string    `json:"customer_info"`
	Total        int64     `json:"total"`
	OldStatus    string    `json:"old_status,omitempty"`
	NewStatus    string    `json:"new_status,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
	EventNewReview          = "new_review"
)

// ReviewEvent feeds the rating/popularity aggregates.
type ReviewEvent struct {
	Type      string    `json:"type"`
	DishID    string    `json:"dish_id"`
	OrderID   string    `json:"order_id"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}
