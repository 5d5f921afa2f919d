package model

// Amenity is a named feature of a property (wifi, parking, pool...).
type Amenity struct {
    ID          uint64 // amenities.amenity_id
    PropertyID  uint64 // amenities.property_id
    Name        string // amenities.name
    Description string // amenities.description
}
