package model

import "time"

// Analytics event kinds. Append-only records; the client never mutates them.
const (
	EventProductView    = "product_view"
	EventAddToCart      = "add_to_cart"
	EventSearch         = "search"
	EventCategoryFilter = "category_filter"
)

// ValidEventType reports whether t is a known analytics event kind.
func ValidEventType(t string) bool {
	switch t {
	case EventProductView, EventAddToCart, EventSearch, EventCategoryFilter:
		return true
	}
	return false
}

// AnalyticsEvent is a single tracked interaction. Timestamps are assigned
// server-side on insert, never trusted from the client.
type AnalyticsEvent struct {
	ID            string    `json:"id,omitempty" db:"id"`
	EventType     string    `json:"eventType" db:"event_type"`
	ProductID     *string   `json:"productId,omitempty" db:"product_id"`
	UserSessionID string    `json:"userSessionId" db:"user_session_id"`
	PageName      string    `json:"pageName" db:"page_name"`
	Timestamp     time.Time `json:"timestamp,omitempty" db:"timestamp"`
}

// Conversion records a checkout intent. There is no payment confirmation
// step, so one record is written per WhatsApp hand-off, not per sale.
type Conversion struct {
	ID              string    `json:"id,omitempty" db:"id"`
	UserSessionID   string    `json:"userSessionId" db:"user_session_id"`
	TotalAmount     int64     `json:"totalAmount" db:"total_amount"`
	ItemsCount      int       `json:"itemsCount" db:"items_count"`
	WhatsAppClicked bool      `json:"whatsappClicked" db:"whatsapp_clicked"`
	Timestamp       time.Time `json:"timestamp,omitempty" db:"timestamp"`
}

// OverallStats is the admin dashboard headline block.
type OverallStats struct {
	TotalViews       int     `json:"totalViews"`
	TotalCartAdds    int     `json:"totalCartAdds"`
	TotalConversions int     `json:"totalConversions"`
	ConversionRate   float64 `json:"conversionRate"`
}

// ProductViewCount is one row of the top-products ranking. The ranking is a
// tally over a bounded window of recent view events, not an all-time count.
type ProductViewCount struct {
	ProductID string `json:"productId"`
	Views     int    `json:"views"`
}
