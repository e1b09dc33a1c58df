package geo

import (
	"fmt"
	"math"
	"time"
)

// FormatDistance renders meters the way listings show them:
// under 100 m exact to the meter, under 1 km rounded to 10 m,
// otherwise kilometres with one decimal.
func FormatDistance(meters float64) string {
	if meters < 100 {
		return fmt.Sprintf("%dm", int(math.Round(meters)))
	}
	if meters < 1000 {
		return fmt.Sprintf("%dm", int(math.Round(meters/10))*10)
	}
	return fmt.Sprintf("%.1fkm", meters/1000)
}

// FormatTimeAgo renders the age of t relative to now in Italian short form.
func FormatTimeAgo(t, now time.Time) string {
	diff := now.Sub(t)
	minutes := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))

	switch {
	case minutes < 1:
		return "Ora"
	case minutes < 60:
		return fmt.Sprintf("%dmin fa", minutes)
	case hours < 24:
		return fmt.Sprintf("%dh fa", hours)
	default:
		return fmt.Sprintf("%dg fa", days)
	}
}
