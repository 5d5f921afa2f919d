package model

import "time"

// Property is a rental listing owned by an admin user.  Rooms and
// amenities hang off a property via foreign keys and are deleted with it.
//
// Fields:
//  ID               – primary key identifier.
//  OwnerID          – admin user who manages the listing.
//  Address          – street address.
//  City             – city name.
//  State            – state or region.
//  Country          – country name.
//  Description      – free-form listing text.
//  ImageURL         – cover image location.
//  ImageDescription – alt text for the cover image.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Property struct {
    ID               uint64    // properties.property_id
    OwnerID          uint64    // properties.owner_id
    Address          string    // properties.address
    City             string    // properties.city
    State            string    // properties.state
    Country          string    // properties.country
    Description      string    // properties.description
    ImageURL         string    // properties.image_url
    ImageDescription string    // properties.image_description
    CreatedAt        time.Time // properties.created_at
    UpdatedAt        time.Time // properties.updated_at
}
