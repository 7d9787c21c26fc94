package students

import "github.com/limitless-club/booking/pkg/airtable"

// EmailStatus is the receipt email state of a student.
type EmailStatus string

const (
	EmailPending EmailStatus = "pending"
	EmailSuccess EmailStatus = "success"
	EmailFail    EmailStatus = "fail"
)

// Student is a row of the Students table.
type Student struct {
	ID                  string                `json:"-"`
	UUID                string                `json:"uuid"`
	FullName            string                `json:"full_name"`
	FullNameCertificate string                `json:"full_name_certificate"`
	Nickname            string                `json:"nickname"`
	UserEmail           string                `json:"user_email"`
	CompanyName         string                `json:"company_name"`
	TaxpayerName        string                `json:"taxpayer_name"`
	TaxID               string                `json:"tax_id"`
	TaxAddress          string                `json:"tax_addres"`
	BillEmail           string                `json:"bill_email"`
	Phone               string                `json:"phone_num"`
	Remark              string                `json:"remark"`
	ClassName           airtable.StringList   `json:"name_class"`
	Date                airtable.StringList   `json:"date"`
	SaleName            string                `json:"name_sale"`
	Document            []airtable.Attachment `json:"Document"`
	EmailStatus         EmailStatus           `json:"is_email_sent"`
	IsUpdate            bool                  `json:"is_update"`
}

// Status returns the email status, pending when unset.
func (s Student) Status() EmailStatus {
	switch s.EmailStatus {
	case EmailSuccess, EmailFail:
		return s.EmailStatus
	default:
		return EmailPending
	}
}

// StatusLabel is the badge text of the email status.
func (s Student) StatusLabel() string {
	switch s.Status() {
	case EmailSuccess:
		return "ส่งแล้ว"
	case EmailFail:
		return "ส่งไม่สำเร็จ"
	default:
		return "ยังไม่ส่ง"
	}
}

// Update is a partial write: nil fields are not sent and keep their
// stored value.
type Update struct {
	FullName            *string               `json:"full_name,omitempty"`
	FullNameCertificate *string               `json:"full_name_certificate,omitempty"`
	Nickname            *string               `json:"nickname,omitempty"`
	UserEmail           *string               `json:"user_email,omitempty"`
	CompanyName         *string               `json:"company_name,omitempty"`
	TaxpayerName        *string               `json:"taxpayer_name,omitempty"`
	TaxID               *string               `json:"tax_id,omitempty"`
	TaxAddress          *string               `json:"tax_addres,omitempty"`
	BillEmail           *string               `json:"bill_email,omitempty"`
	Phone               *string               `json:"phone_num,omitempty"`
	Remark              *string               `json:"remark,omitempty"`
	ClassName           *string               `json:"name_class,omitempty"`
	SaleName            *string               `json:"name_sale,omitempty"`
	Document            []airtable.Attachment `json:"Document,omitempty"`
	EmailStatus         *EmailStatus          `json:"is_email_sent,omitempty"`
	IsUpdate            *bool                 `json:"is_update,omitempty"`
}

func str(s string) *string { return &s }

// Optional returns nil for "", so empty form fields keep the stored value.
func Optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
