package bookings

import "github.com/limitless-club/booking/pkg/airtable"

// Status of a booking. New bookings are Pending until staff confirm the slip.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCancelled Status = "Cancelled"
)

// Booking is a row of the Bookings table.
type Booking struct {
	ID              string                `json:"-"`
	FirstName       string                `json:"First Name"`
	LastName        string                `json:"Last Name"`
	Date            string                `json:"Date,omitempty"`
	BookingType     string                `json:"Booking Type,omitempty"`
	BookingTypeName string                `json:"Booking Type Name,omitempty"`
	TimeSlot        string                `json:"Time Slot"`
	StartTime       string                `json:"Start Time,omitempty"`
	EndTime         string                `json:"End Time,omitempty"`
	RoomID          string                `json:"Room ID"`
	RoomName        string                `json:"Room Name,omitempty"`
	TotalPrice      float64               `json:"Total Price"`
	Receipt         []airtable.Attachment `json:"Receipt,omitempty"`
	Status          Status                `json:"Status"`
	CreatedAt       string                `json:"Created At,omitempty"`
}
