package entity

import "time"

type ListingType string

const (
	ListingTypeSale ListingType = "sale"
	ListingTypeRent ListingType = "rent"
)

// Valid reports whether t is one of the known listing types
func (t ListingType) Valid() bool {
	return t == ListingTypeSale || t == ListingTypeRent
}

const DefaultCurrency = "INR"

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

// Image points at an object in the image store. PublicID is the store key
// used to delete it again.
type Image struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Listing is a property offered for sale or rent.
type Listing struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Currency    string      `json:"currency"`
	Type        ListingType `json:"type"`
	Furnished   bool        `json:"furnished"`
	Bedrooms    int         `json:"bedrooms"`
	Bathrooms   int         `json:"bathrooms"`
	AreaSqFt    float64     `json:"areaSqFt"`
	Address     Address     `json:"address"`
	Image       Image       `json:"image"`
	OwnerID     string      `json:"owner"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// ListingFilter narrows a listing search. Zero values mean "no constraint".
type ListingFilter struct {
	Search   string
	City     string
	Type     ListingType
	MinPrice float64
	MaxPrice float64
	Limit    int
	Offset   int
}
