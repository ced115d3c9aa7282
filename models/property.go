package models

// PricingRow is one raw row of the spreadsheet-derived pricing catalog.
// Multiple rows may share a property name (one per room configuration).
type PricingRow struct {
	PropertyName      string
	Location          string
	Address           string
	Lat               float64
	Long              float64
	Cluster           string
	Config            string
	Price             float64
	ImageLink         string
	TemplateImageLink string
	GmapLink          string
}

// PropertySummary is one pricing-catalog property collapsed across its room
// configurations, with min/max price taken over all rows sharing the name.
type PropertySummary struct {
	PropertyName      string  `json:"propertyName"`
	Location          string  `json:"location"`
	Cluster           string  `json:"cluster"`
	DistanceKm        float64 `json:"distanceKm"`
	MinPrice          int     `json:"minPrice"`
	MaxPrice          int     `json:"maxPrice"`
	DriveFolderID     string  `json:"driveFolderId,omitempty"`
	TemplateImageLink string  `json:"templateImageLink,omitempty"`
}

// Amenity is a named amenity attached to a property or room type.
type Amenity struct {
	Name string `json:"name"`
}

// CatalogLocation carries the PMS location block for a property.
type CatalogLocation struct {
	ParentLocationName string `json:"parentLocationName"`
	MapURL             string `json:"mapUrl"`
}

// CatalogProperty is one entry of the property-management-system catalog.
// It shares no key with PricingRow; the two are joined by fuzzy name match.
type CatalogProperty struct {
	ID            int              `json:"id"`
	PropertyID    int              `json:"propertyId"`
	Name          string           `json:"name"`
	FullAddress   string           `json:"fullAddress"`
	AddressStreet string           `json:"addressStreet"`
	AddressCity   string           `json:"addressCity"`
	AddressState  string           `json:"addressState"`
	AddressPin    string           `json:"addressPincode"`
	Genders       string           `json:"genders"`
	Type          string           `json:"type"`
	ResidentType  string           `json:"residentType"`
	Description   string           `json:"description"`
	StartingPrice float64          `json:"startingPrice"`
	Status        string           `json:"status"`
	Amenities     []Amenity        `json:"amenities"`
	Location      *CatalogLocation `json:"location,omitempty"`
}

// CatalogID returns the property id regardless of which field the PMS payload
// carried it in.
func (p CatalogProperty) CatalogID() int {
	if p.PropertyID != 0 {
		return p.PropertyID
	}
	return p.ID
}

// RoomType is one room configuration of a property as reported by the PMS.
type RoomType struct {
	Name             string    `json:"name"`
	SharedAmenities  []Amenity `json:"sharedAmenities"`
	PrivateAmenities []Amenity `json:"privateAmenities"`
}
