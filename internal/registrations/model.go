package registrations

import "github.com/limitless-club/booking/pkg/airtable"

// Registration is a row of the Registration table.
type Registration struct {
	ID        string                `json:"-"`
	UUID      string                `json:"uuid"`
	PayerName string                `json:"payer_name"`
	Receipt   []airtable.Attachment `json:"receipt"`
}

type update struct {
	PayerName *string               `json:"payer_name,omitempty"`
	Receipt   []airtable.Attachment `json:"receipt,omitempty"`
}
