package domain

import "time"

// Property is a let-able property owned by exactly one landlord. Ownership is
// fixed at creation; there is no transfer operation.
type Property struct {
	ID           string
	OwnerID      string
	Name         string
	AddressLine1 string
	AddressLine2 string // optional
	City         string
	County       string
	Postcode     string
	PropertyType string
	Bedrooms     int
	Bathrooms    int
	Description  string // optional
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PropertySummary is the subset of property fields shown to invitees before
// they hold any membership on the property.
type PropertySummary struct {
	ID           string
	Name         string
	PropertyType string
	AddressLine1 string
	City         string
}

// Summary returns the invitee-visible view of p.
func (p Property) Summary() PropertySummary {
	return PropertySummary{
		ID:           p.ID,
		Name:         p.Name,
		PropertyType: p.PropertyType,
		AddressLine1: p.AddressLine1,
		City:         p.City,
	}
}
