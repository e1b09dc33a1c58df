// Package models defines server-side data models persisted in the database.
package models

import "time"

// Kind distinguishes physical objects from neighbourhood services.
type Kind string

const (
	KindObject  Kind = "object"
	KindService Kind = "service"
)

// ItemStatus is the lifecycle state of a listing.
type ItemStatus string

const (
	StatusActive    ItemStatus = "active"
	StatusReserved  ItemStatus = "reserved"
	StatusSold      ItemStatus = "sold"
	StatusCompleted ItemStatus = "completed"
	StatusExpired   ItemStatus = "expired"
)

// Valid reports whether s is a known status.
func (s ItemStatus) Valid() bool {
	switch s {
	case StatusActive, StatusReserved, StatusSold, StatusCompleted, StatusExpired:
		return true
	}
	return false
}

// Option is a selectable catalog value with its Italian label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var objectCategories = []Option{
	{"casa", "Casa"},
	{"libri", "Libri"},
	{"elettronica", "Elettronica"},
	{"vestiti", "Vestiti"},
	{"sport", "Sport"},
	{"giochi", "Giochi"},
	{"altro_oggetto", "Altro"},
}

var serviceCategories = []Option{
	{"casa_servizi", "Lavori Casa"},
	{"giardinaggio", "Giardinaggio"},
	{"ripetizioni", "Ripetizioni"},
	{"trasporti", "Trasporti"},
	{"pulizie", "Pulizie"},
	{"pet_care", "Pet Care"},
	{"tech_support", "Supporto Tech"},
	{"altro_servizio", "Altro"},
}

var objectTypes = []Option{
	{"vendo", "Vendo"},
	{"scambio", "Scambio"},
	{"presto", "Presto"},
}

var serviceTypes = []Option{
	{"offro", "Offro"},
	{"cerco", "Cerco"},
}

// CategoriesForKind returns the categories a listing of kind may use.
// Unknown kinds have none.
func CategoriesForKind(kind Kind) []Option {
	switch kind {
	case KindObject:
		return objectCategories
	case KindService:
		return serviceCategories
	}
	return nil
}

// TypesForKind returns the listing types allowed for kind.
func TypesForKind(kind Kind) []Option {
	switch kind {
	case KindObject:
		return objectTypes
	case KindService:
		return serviceTypes
	}
	return nil
}

// HasOption reports whether value is one of opts.
func HasOption(opts []Option, value string) bool {
	for _, o := range opts {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Item is a listing offered by a user at a fixed location.
type Item struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Kind        Kind
	Category    string
	Type        string
	// Price is nil when the listing has no price.
	Price       *float64
	Currency    string
	Lat         float64
	Lng         float64
	AddressHint string
	ImageURLs   []string
	Status      ItemStatus
	ExpiresAt   *time.Time
	ViewsCount  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NearbyItem is an Item as seen from a search point.
type NearbyItem struct {
	Item
	DistanceMeters float64
	OwnerName      string
}
