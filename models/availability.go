package models

// RoomAvailability is the live bed count for one room type, partitioned by
// gender. Retrieved per request, never cached.
type RoomAvailability struct {
	RoomTypeName        string `json:"roomTypeName"`
	AvailableBeds       int    `json:"availableBeds"`
	AvailableMaleBeds   int    `json:"availableMaleBeds"`
	AvailableFemaleBeds int    `json:"availableFemaleBeds"`
}

// PropertyAvailability groups the room-type availability of one property.
type PropertyAvailability struct {
	PropertyID   int                `json:"propertyId"`
	Availability []RoomAvailability `json:"availability"`
}

// RoomTypeSummary is a user-facing availability line for one room type with
// nonzero beds.
type RoomTypeSummary struct {
	RoomType        string `json:"roomType"`
	TotalAvailable  int    `json:"totalAvailable"`
	MaleAvailable   int    `json:"maleAvailable"`
	FemaleAvailable int    `json:"femaleAvailable"`
}

// PropertyBeds is the aggregate availability of one catalog property.
type PropertyBeds struct {
	PropertyID    int               `json:"propertyId"`
	Name          string            `json:"name"`
	Address       string            `json:"address"`
	City          string            `json:"city"`
	AvailableBeds int               `json:"availableBeds"`
	Rooms         []RoomTypeSummary `json:"rooms"`
}
