package web

import (
	"bytes"
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limitless-club/booking/internal/action"
	"github.com/limitless-club/booking/internal/bookings"
	"github.com/limitless-club/booking/internal/emailtemplates"
	"github.com/limitless-club/booking/internal/lookups"
	"github.com/limitless-club/booking/internal/students"
	"github.com/limitless-club/booking/pkg/airtable"
)

func render(t *testing.T, tmpl *template.Template, name string, data map[string]any) string {
	t.Helper()
	data["csrfField"] = template.HTML(`<input type="hidden" name="gorilla.csrf.Token" value="tok">`)
	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, name, data), name)
	return buf.String()
}

func TestPagesRender(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	st := students.Student{
		ID:        "rec1",
		FullName:  "Somchai",
		ClassName: airtable.StringList{"Yoga 101"},
		Date:      airtable.StringList{"2024-05-01"},
		IsUpdate:  true,
		Document:  []airtable.Attachment{{URL: "https://res.example/a.pdf", Filename: "a.pdf"}},
	}
	failed := action.Failed(action.Invalid("x"), "บันทึกไม่สำเร็จ")
	ok := action.OK("บันทึกข้อมูลสำเร็จ!")
	ok.Warning = "คำเตือน"

	out := render(t, tmpl, "students.html", map[string]any{
		"refid": "u-1", "students": []students.Student{st}, "activeID": "rec1", "result": &failed,
	})
	assert.Contains(t, out, "1 พฤษภาคม 2567")
	assert.Contains(t, out, "/registrations/u-1/slips")
	assert.Contains(t, out, "gorilla.csrf.Token")
	assert.Contains(t, out, "บันทึกไม่สำเร็จ")

	out = render(t, tmpl, "send_email.html", map[string]any{
		"student": &st, "students": []students.Student{st}, "result": (*action.Result)(nil),
	})
	assert.Contains(t, out, `action="/send-email/rec1"`)
	assert.Contains(t, out, "ยังไม่ส่ง")

	out = render(t, tmpl, "send_email.html", map[string]any{
		"student": (*students.Student)(nil), "students": []students.Student(nil), "result": (*action.Result)(nil),
	})
	assert.Contains(t, out, "ไม่พบข้อมูลผู้เรียน")

	out = render(t, tmpl, "index.html", map[string]any{
		"slots": bookings.TimeSlots, "selectedSlot": "12:00 - 14:00", "rooms": bookings.AvailableRooms("12:00 - 14:00"),
	})
	assert.Contains(t, out, "ห้องที่ 1")
	assert.NotContains(t, out, "ห้องที่ 2")

	out = render(t, tmpl, "booking.html", map[string]any{
		"form":         bookings.Input{TimeSlot: "10:00 - 12:00", RoomID: "room1", RoomName: "ห้องที่ 1"},
		"quote":        bookings.Quote{Hours: 2, RoomPrice: 300, Total: 600},
		"bookingTypes": []lookups.BookingType{{ID: "band", Name: "Band"}},
		"result":       (*action.Result)(nil),
	})
	assert.Contains(t, out, "600 บาท")
	assert.Contains(t, out, `name="receipt"`)

	out = render(t, tmpl, "booking.html", map[string]any{
		"form": bookings.Input{}, "quote": bookings.Quote{}, "bookingTypes": []lookups.BookingType(nil), "result": &ok,
	})
	assert.Contains(t, out, "คำเตือน")
	assert.NotContains(t, out, `name="receipt"`)

	out = render(t, tmpl, "templates.html", map[string]any{
		"templates": []emailtemplates.Template{{Key: airtable.StringList{"T1"}, IsActive: true}},
	})
	assert.Contains(t, out, "Template Email ทั้งหมด (1)")
	assert.Contains(t, out, "Active")

	out = render(t, tmpl, "login.html", map[string]any{"callbackUrl": "/templates", "message": "ผิด", "user": "admin"})
	assert.Contains(t, out, `value="/templates"`)
	assert.Contains(t, out, "/logout")

	out = render(t, tmpl, "error.html", map[string]any{"title": "Not Found", "message": "ไม่พบ"})
	assert.Contains(t, out, "ไม่พบ")
}
