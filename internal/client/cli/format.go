package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/localswap/internal/api"
	"github.com/dmitrijs2005/localswap/internal/geo"
)

// now is replaced in tests to get stable "time ago" output.
var now = time.Now

func formatPrice(it *api.Item) string {
	if it.Price == nil {
		if it.Type == "regalo" {
			return "Gratis"
		}
		return "-"
	}
	cur := it.Currency
	if cur == "" || cur == "EUR" {
		cur = "€"
	}
	return fmt.Sprintf("%s%.2f", cur, *it.Price)
}

func formatItemLine(it *api.Item) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  [%s/%s]  %s", it.ID, it.Title, it.Kind, it.Category, formatPrice(it))
	if it.Distance != "" {
		fmt.Fprintf(&b, "  %s", it.Distance)
	} else if it.DistanceMeters != nil {
		fmt.Fprintf(&b, "  %s", geo.FormatDistance(*it.DistanceMeters))
	}
	if it.OwnerName != "" {
		fmt.Fprintf(&b, "  by %s", it.OwnerName)
	}
	if !it.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "  %s", geo.FormatTimeAgo(it.CreatedAt, now()))
	}
	if it.Status != "" && it.Status != "active" {
		fmt.Fprintf(&b, "  (%s)", it.Status)
	}
	return b.String()
}

func formatItemDetails(it *api.Item, from geo.Point) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", it.Title)
	fmt.Fprintf(&b, "  id:          %s\n", it.ID)
	fmt.Fprintf(&b, "  kind:        %s / %s / %s\n", it.Kind, it.Category, it.Type)
	fmt.Fprintf(&b, "  price:       %s\n", formatPrice(it))
	fmt.Fprintf(&b, "  status:      %s\n", it.Status)
	d := geo.Distance(from, geo.Point{Lat: it.Lat, Lng: it.Lng})
	fmt.Fprintf(&b, "  distance:    %s\n", geo.FormatDistance(d))
	if it.AddressHint != "" {
		fmt.Fprintf(&b, "  where:       %s\n", it.AddressHint)
	}
	fmt.Fprintf(&b, "  views:       %d\n", it.ViewsCount)
	fmt.Fprintf(&b, "  posted:      %s\n", geo.FormatTimeAgo(it.CreatedAt, now()))
	for _, u := range it.ImageURLs {
		fmt.Fprintf(&b, "  image:       %s\n", u)
	}
	if it.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", it.Description)
	}
	return b.String()
}
