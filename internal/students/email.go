package students

import (
	"bytes"
	"fmt"
	"html"
	"html/template"

	"github.com/limitless-club/booking/internal/emailtemplates"
	"github.com/limitless-club/booking/internal/thaidate"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<div style="font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; color: #0e0e0e; line-height: 1.6; max-width: 800px; margin: 0 auto; padding: 20px;">
  <div style="margin-bottom: 1px; padding-bottom: 15px; border-bottom: 1px dashed #e2e8f0;">
    <p style="margin: 0 0 8px 0; font-size: 16px;">สวัสดีค่ะ คุณ <strong>{{.FullName}}</strong></p>
    <p style="margin: 0 0 8px 0; font-size: 16px;">ขอบคุณที่สมัครเรียน คลาส <strong>{{.ClassName}}</strong> รอบวันที่ <strong>{{.ShortDate}}</strong></p>
    <p style="margin: 0; font-weight: bold; font-size: 16px;">PAYMENT CODE ของกลุ่มคุณคือ : {{.PaymentCode}}</p>
  </div>
  <div style="white-space: pre-wrap; margin-bottom: 5px;">
    <p style="margin: 0; font-weight: bold; font-size: 16px;">ยืนยัน คลาส {{.ClassName}} วันที่ {{.LongDate}}</p>
    <p style="margin: 0; font-weight: normal; font-size: 14px;">{{.Body}}</p>
  </div>
  {{- if .YoutubeLink}}
  <div style="margin-top: 20px; padding: 15px; background-color: #f8fafc; border-radius: 8px; border: 1px solid #e2e8f0;">
    <p style="margin-top: 0; font-weight: bold; color: #1e293b;">ช่องทางการรับชม YouTube:</p>
    <a href="{{.YoutubeLink}}" style="color: #2563eb; text-decoration: underline;">{{.YoutubeLink}}</a>
  </div>
  {{- end}}
</div>`))

type confirmation struct {
	FullName    string
	ClassName   string
	ShortDate   string
	LongDate    string
	PaymentCode string
	Body        template.HTML
	YoutubeLink string
}

// ConfirmationSubject is the subject of the class confirmation email.
func ConfirmationSubject(className string) string {
	return "ยืนยันข้อมูลและเริ่มเรียนคลาส " + className
}

// composeConfirmation renders the confirmation email for a saved profile.
// The template body is staff-authored HTML; the substituted values come
// from the student and are escaped.
func composeConfirmation(tpl *emailtemplates.Template, in ProfileInput) (string, error) {
	day, err := thaidate.Parse(in.Date)
	if err != nil {
		return "", err
	}
	code := emailtemplates.ShortUUID(in.UUID)
	long, short := thaidate.Long(day), thaidate.Short(day)
	body := emailtemplates.Render(tpl.Body, map[string]string{
		"full_name":    html.EscapeString(in.FullName),
		"full_th_date": long,
		"date":         short,
		"uuid":         code,
	})

	var buf bytes.Buffer
	err = confirmationTmpl.Execute(&buf, confirmation{
		FullName:    in.FullName,
		ClassName:   in.ClassName,
		ShortDate:   short,
		LongDate:    long,
		PaymentCode: code,
		Body:        template.HTML(body),
		YoutubeLink: tpl.YoutubeLink,
	})
	if err != nil {
		return "", fmt.Errorf("render confirmation: %w", err)
	}
	return buf.String(), nil
}
