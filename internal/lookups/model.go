// Package lookups serves the read-only Rooms and Booking Types tables used
// by the booking wizard for price previews.
package lookups

import "github.com/limitless-club/booking/pkg/airtable"

// Room is a bookable room.
type Room struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	PricePerHour float64 `json:"pricePerHour"`
}

// BookingType is an add-on (e.g. with instructor) priced per hour on top
// of the room.
type BookingType struct {
	ID                     string  `json:"id"`
	Name                   string  `json:"name"`
	AdditionalPricePerHour float64 `json:"additionalPricePerHour"`
}

// ids may be typed as text, number or lookup in the base, so they decode
// through StringList.
type roomFields struct {
	ID    airtable.StringList `json:"Room ID"`
	Name  airtable.StringList `json:"Room Name"`
	Price float64             `json:"Price Per Hour"`
}

func (f roomFields) room() Room {
	return Room{ID: f.ID.First(), Name: f.Name.First(), PricePerHour: f.Price}
}

type bookingTypeFields struct {
	ID    airtable.StringList `json:"Type ID"`
	Name  airtable.StringList `json:"Type Name"`
	Price float64             `json:"Additional Price Per Hour"`
}

func (f bookingTypeFields) bookingType() BookingType {
	return BookingType{ID: f.ID.First(), Name: f.Name.First(), AdditionalPricePerHour: f.Price}
}
