package models

import "time"

// Rating is one user's feedback on another after a transaction.
type Rating struct {
	ID              string
	RatedUserID     string
	RaterUserID     string
	Rating          int
	Comment         string
	TransactionType string
	// ItemID is empty when the rating is not tied to a listing.
	ItemID    string
	CreatedAt time.Time
}
