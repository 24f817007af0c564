package kafka

import "time"

// Topics
const (
	TopicFavoriteAudit = "favorites.audit"
	TopicCustomerAudit = "customers.audit"
)

// Event types
const (
	EventTypeFavoriteCreated     = "favorite.created"
	EventTypeFavoriteReactivated = "favorite.reactivated"
	EventTypeFavoriteDeactivated = "favorite.deactivated"
	EventTypeCustomerDeleted     = "customer.deleted"
)

// FavoriteEvent records a favorite lifecycle transition for the audit trail
type FavoriteEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	FavoriteID string    `json:"favorite_id"`
	CustomerID uint      `json:"customer_id"`
	ProductID  int       `json:"product_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// CustomerDeletedEvent records an account deletion for the audit trail
type CustomerDeletedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	CustomerID uint      `json:"customer_id"`
	Timestamp  time.Time `json:"timestamp"`
}
