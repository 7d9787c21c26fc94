package emailtemplates

import (
	"strings"

	"github.com/limitless-club/booking/internal/thaidate"
	"github.com/limitless-club/booking/pkg/airtable"
)

// Template is an email template row.
type Template struct {
	RecordID    string              `json:"-"`
	Key         airtable.StringList `json:"Id"`
	IsActive    bool                `json:"Is Active"`
	ClassName   airtable.StringList `json:"class_name"`
	Date        airtable.StringList `json:"Date"`
	Body        string              `json:"Template"`
	YoutubeLink string              `json:"Link Youtube"`
	LastUpdated string              `json:"Last Updated"`
}

// Matches reports whether the template applies to className on date.
// Class names compare trimmed and case-sensitive; dates compare after
// normalising both sides to YYYY-MM-DD.
func (t Template) Matches(className, date string) bool {
	want := strings.TrimSpace(className)
	classOK := false
	for _, c := range t.ClassName {
		if strings.TrimSpace(c) == want {
			classOK = true
			break
		}
	}
	if len(t.ClassName) == 0 && want == "" {
		classOK = true
	}
	if !classOK {
		return false
	}
	wantDate := thaidate.NormalizeDate(date)
	for _, d := range t.Date {
		if d == "" {
			continue
		}
		if thaidate.NormalizeDate(d) == wantDate {
			return true
		}
	}
	return false
}
