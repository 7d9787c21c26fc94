package students

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/limitless-club/booking/internal/action"
)

// Messages shown when a profile is rejected.
const (
	MsgRequired     = "กรุณากรอกข้อมูลให้ครบทุกช่อง"
	MsgEmail        = "รูปแบบอีเมลไม่ถูกต้อง"
	MsgPhone        = "เบอร์โทรศัพท์ต้องเป็นตัวเลข 10 หลัก"
	MsgTaxID        = "เลขประจำตัวผู้เสียภาษีต้องเป็นตัวเลข 13 หลัก"
	MsgLatinName    = "ชื่อ-นามสกุล (English) ต้องเป็นภาษาอังกฤษเท่านั้น"
	MsgMissingID    = "Missing Record ID"
	MsgSaved        = "บันทึกข้อมูลสำเร็จ"
	MsgSaveFailed   = "เกิดข้อผิดพลาดในการบันทึกข้อมูล"
	MsgSaleFailed   = "Failed to update sale name"
	MsgSaleAssigned = "อัปเดตชื่อเซลล์เรียบร้อยแล้ว"
)

var (
	emailRe     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe     = regexp.MustCompile(`^[0-9]{10}$`)
	taxIDRe     = regexp.MustCompile(`^[0-9]{13}$`)
	latinNameRe = regexp.MustCompile(`^[a-zA-Z\s]+$`)
)

// Rules in the order they are reported; the first one violated wins.
var rulePriority = []struct {
	tag string
	msg string
}{
	{"required", MsgRequired},
	{"looseemail", MsgEmail},
	{"phone10", MsgPhone},
	{"taxid", MsgTaxID},
	{"latinname", MsgLatinName},
}

func regexRule(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("looseemail", regexRule(emailRe))
	_ = v.RegisterValidation("phone10", regexRule(phoneRe))
	_ = v.RegisterValidation("taxid", regexRule(taxIDRe))
	_ = v.RegisterValidation("latinname", regexRule(latinNameRe))
	return v
}

var validate = newValidator()

// ProfileInput is the student info form.
type ProfileInput struct {
	FullName            string `form:"full_name" json:"full_name" validate:"required"`
	FullNameCertificate string `form:"full_name_certificate" json:"full_name_certificate" validate:"required,latinname"`
	Nickname            string `form:"nickname" json:"nickname" validate:"required"`
	UserEmail           string `form:"user_email" json:"user_email" validate:"required,looseemail"`
	CompanyName         string `form:"company_name" json:"company_name" validate:"required"`
	TaxpayerName        string `form:"taxpayer_name" json:"taxpayer_name"`
	TaxID               string `form:"tax_id" json:"tax_id" validate:"required,taxid"`
	TaxAddress          string `form:"tax_addres" json:"tax_addres" validate:"required"`
	BillEmail           string `form:"bill_email" json:"bill_email" validate:"required,looseemail"`
	Phone               string `form:"phone_num" json:"phone_num" validate:"required,phone10"`
	Remark              string `form:"remark" json:"remark"`

	// Used to pick the confirmation email; not written back.
	ClassName string `form:"name_class" json:"name_class"`
	Date      string `form:"date" json:"date"`
	UUID      string `form:"uuid" json:"uuid"`
}

// Validate returns a ValidationError carrying the message of the
// highest-priority rule that failed, or nil.
func (in ProfileInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return action.Invalid(MsgRequired)
	}
	failed := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		failed[fe.Tag()] = true
	}
	for _, r := range rulePriority {
		if failed[r.tag] {
			return action.Invalid(r.msg)
		}
	}
	return action.Invalid(MsgRequired)
}

// prefill copies the editable fields onto s for re-display.
func (in ProfileInput) prefill(s *Student) {
	s.FullName = in.FullName
	s.FullNameCertificate = in.FullNameCertificate
	s.Nickname = in.Nickname
	s.UserEmail = in.UserEmail
	s.CompanyName = in.CompanyName
	s.TaxpayerName = in.TaxpayerName
	s.TaxID = in.TaxID
	s.TaxAddress = in.TaxAddress
	s.BillEmail = in.BillEmail
	s.Phone = in.Phone
	s.Remark = in.Remark
}

func (in ProfileInput) update() Update {
	done := true
	return Update{
		FullName:            str(in.FullName),
		FullNameCertificate: str(in.FullNameCertificate),
		Nickname:            str(in.Nickname),
		UserEmail:           str(in.UserEmail),
		CompanyName:         str(in.CompanyName),
		TaxpayerName:        Optional(in.TaxpayerName),
		TaxID:               str(in.TaxID),
		TaxAddress:          str(in.TaxAddress),
		BillEmail:           str(in.BillEmail),
		Phone:               str(in.Phone),
		Remark:              str(in.Remark),
		IsUpdate:            &done,
	}
}
