package bookings

// RoomOption is a room on the slot picker.
type RoomOption struct {
	ID   string
	Name string
}

// TimeSlots are the bookable two-hour slots.
var TimeSlots = []string{
	"10:00 - 12:00",
	"12:00 - 14:00",
	"14:00 - 16:00",
	"16:00 - 18:00",
	"18:00 - 20:00",
	"20:00 - 22:00",
}

// Rooms are the rooms shown on the slot picker.
var Rooms = []RoomOption{
	{ID: "room1", Name: "ห้องที่ 1"},
	{ID: "room2", Name: "ห้องที่ 2"},
}

// availability is a fixed map until bookings are checked against the table.
var availability = map[string][]string{
	"10:00 - 12:00": {"room1", "room2"},
	"12:00 - 14:00": {"room1"},
	"14:00 - 16:00": {"room2"},
	"16:00 - 18:00": {"room1", "room2"},
	"18:00 - 20:00": {"room1"},
	"20:00 - 22:00": {"room2"},
}

// AvailableRooms returns the rooms free in slot.
func AvailableRooms(slot string) []RoomOption {
	var out []RoomOption
	for _, id := range availability[slot] {
		if r, ok := roomByID(id); ok {
			out = append(out, r)
		}
	}
	return out
}

// RoomName returns the display name of room id, or "".
func RoomName(id string) string {
	r, _ := roomByID(id)
	return r.Name
}

func roomByID(id string) (RoomOption, bool) {
	for _, r := range Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return RoomOption{}, false
}
