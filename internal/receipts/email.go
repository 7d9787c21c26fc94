package receipts

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"
)

// Defaults for empty content fields.
const (
	DefaultSubject   = "ใบเสร็จรับเงิน/ใบกำกับภาษี"
	DefaultRecipient = "ลูกค้าผู้มีอุปการคุณ"
	DefaultFooter    = "Limitless Club Team"
)

var receiptTmpl = template.Must(template.New("receipt").Parse(`<div style="font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; color: #333; line-height: 1.6; max-width: 600px; margin: 0 auto; border: 1px solid #eee; padding: 20px; border-radius: 8px;">
  {{- if .Header}}
  <h1 style="color: #4f46e5; margin-bottom: 20px; font-size: 24px; text-align: center;">{{.Header}}</h1>
  {{- end}}
  <div style="margin-bottom: 20px;">
    <p style="font-size: 16px; margin-bottom: 10px;">เรียน {{.Recipient}},</p>
    {{- if .BoldText}}
    <p style="font-weight: bold; font-size: 18px; color: #111; margin: 15px 0;">{{.BoldText}}</p>
    {{- end}}
    <div style="color: #555; margin-bottom: 20px;">{{.Detail}}</div>
  </div>
  <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;" />
  <div style="text-align: center; color: #888; font-size: 16px;">
    <p style="font-weight: bold; color: #4f46e5; margin-bottom: 5px;">{{.Footer}}</p>
    <p style="font-size: 12px;">-</p>
  </div>
</div>`))

// Content is the staff-editable part of the receipt email.
type Content struct {
	Subject   string `form:"email_subject"`
	Header    string `form:"email_header"`
	Recipient string `form:"email_recipient"`
	BoldText  string `form:"email_bold_text"`
	Detail    string `form:"email_detail"`
	Footer    string `form:"email_footer"`
}

func (c Content) subject() string {
	if s := strings.TrimSpace(c.Subject); s != "" {
		return s
	}
	return DefaultSubject
}

// detailHTML escapes the detail text and keeps its line breaks.
func detailHTML(detail string) template.HTML {
	detail = strings.ReplaceAll(detail, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(html.EscapeString(detail), "\n", "<br/>"))
}

func composeReceipt(c Content) (string, error) {
	data := struct {
		Header, Recipient, BoldText, Footer string
		Detail                              template.HTML
	}{
		Header:    c.Header,
		Recipient: c.Recipient,
		BoldText:  c.BoldText,
		Footer:    c.Footer,
		Detail:    detailHTML(c.Detail),
	}
	if data.Recipient == "" {
		data.Recipient = DefaultRecipient
	}
	if data.Footer == "" {
		data.Footer = DefaultFooter
	}
	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render receipt: %w", err)
	}
	return buf.String(), nil
}
