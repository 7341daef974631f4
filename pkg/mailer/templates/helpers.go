package templates

import (
	"strings"
	"time"
)

// Brand carries the sender identity shared by all templates.
type Brand struct {
	CompanyName string
	AppName     string
	SupportURL  string
	ListingURL  string // base URL of the listing page; the listing id is appended
}

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) { d.Time = t.UTC().Format("02 January 2006, 15:04") }
}

// WithListing fills the listing fields. The listing link is built from the
// brand's ListingURL.
func WithListing(b Brand, id, title, city string, price float64, currency string) Option {
	return func(d *EmailData) {
		d.ListingTitle = title
		d.ListingCity = city
		d.ListingPrice = price
		d.Currency = currency
		if base := strings.TrimRight(b.ListingURL, "/"); base != "" && id != "" {
			d.ListingURL = base + "/" + id
		}
	}
}

// NewBaseEmailData fills the common fields from the brand, then applies opts.
func NewBaseEmailData(b Brand, username, email string, opts ...Option) EmailData {
	d := EmailData{
		Username:    username,
		Email:       email,
		CompanyName: b.CompanyName,
		AppName:     b.AppName,
		SupportURL:  b.SupportURL,
	}
	WithTime(time.Now())(&d)
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(b Brand, username, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(b, username, email, opts...))
}

func NewListingPublishedData(b Brand, username, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(b, username, email, opts...))
}
