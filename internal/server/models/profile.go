package models

import "time"

// Profile holds public data about a user. ID is the identity provider's
// user id.
type Profile struct {
	ID                     string
	Username               string
	FullName               string
	AvatarURL              string
	Phone                  string
	ReputationScore        float64
	TotalTransactions      int
	SuccessfulTransactions int
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

type reputationLevel struct {
	min   float64
	label string
}

var reputationLevels = []reputationLevel{
	{4.5, "Top Trader"},
	{4, "Esperto"},
	{3, "Affidabile"},
	{1, "Principiante"},
	{0, "Nuovo"},
}

// ReputationLabel names the band score falls in.
func ReputationLabel(score float64) string {
	for _, l := range reputationLevels {
		if score >= l.min {
			return l.label
		}
	}
	return "Nuovo"
}
