package models

import "time"

// UserInteraction records that a user engaged with a gig. Only the category
// and seller feed the similarity graph; the gig identifier is kept for
// auditing.
type UserInteraction struct {
	UserID     string    `json:"userId"`
	GigID      string    `json:"gigId"`
	Category   string    `json:"category"`
	SellerID   string    `json:"sellerId"`
	OccurredAt time.Time `json:"occurredAt"`
}
