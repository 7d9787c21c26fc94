// Package thaidate formats dates the way Thai readers expect them:
// Buddhist-era years and Thai month names.
package thaidate

import (
	"fmt"
	"strings"
	"time"
)

// BuddhistOffset is added to the Gregorian year.
const BuddhistOffset = 543

var longMonths = [...]string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

var shortMonths = [...]string{
	"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
	"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
}

// NormalizeDate reduces a record-store date to YYYY-MM-DD: an ISO
// timestamp keeps the part before "T", otherwise "/" becomes "-".
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "T"); i >= 0 {
		return s[:i]
	}
	return strings.ReplaceAll(s, "/", "-")
}

// Parse reads a date in any form NormalizeDate accepts.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", NormalizeDate(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// Long formats t as "1 พฤษภาคม 2567".
func Long(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), longMonths[t.Month()-1], t.Year()+BuddhistOffset)
}

// Short formats t as "1 พ.ค. 67".
func Short(t time.Time) string {
	return fmt.Sprintf("%d %s %02d", t.Day(), shortMonths[t.Month()-1], (t.Year()+BuddhistOffset)%100)
}
