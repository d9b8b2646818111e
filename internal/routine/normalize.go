package routine

import (
	"strings"

	"github.com/campus-routine/routine-api/internal/models"
)

// Slots is the fixed daily time grid, in display order.
var Slots = []string{
	"08:30-10:00",
	"10:00-11:30",
	"11:30-13:00",
	"13:00-14:30",
	"14:30-16:00",
	"16:00-17:30",
}

// PortalDays is the teaching week. Friday is the weekly holiday and never
// appears in schedule views.
var PortalDays = []string{
	"Saturday",
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
}

// SlotIndex returns the position of slot in the daily grid, or -1 when the
// value is not a known slot.
func SlotIndex(slot string) int {
	s := strings.TrimSpace(slot)
	for i, known := range Slots {
		if s == known {
			return i
		}
	}
	return -1
}

// DayIndex returns the position of day in the teaching week, or -1.
func DayIndex(day string) int {
	d := strings.TrimSpace(day)
	for i, known := range PortalDays {
		if strings.EqualFold(d, known) {
			return i
		}
	}
	return -1
}

// IsRoutineEntry reports whether a normalized row denotes a scheduled class.
// Day and slot are both required; every other field may be empty.
func IsRoutineEntry(row models.ClassRow) bool {
	return row.Day != "" && row.Slot != ""
}

// Normalize maps a raw sheet grid to class rows. The first row is the
// header; columns are located by header text, so column order in the
// uploaded file does not matter. Rows without both a day and a slot are
// dropped.
func Normalize(rows [][]string) []models.ClassRow {
	out := []models.ClassRow{}
	if len(rows) == 0 {
		return out
	}

	header := rows[0]
	dayIdx := headerIndex(header, "day")
	slotIdx := headerIndex(header, "time", "slot")
	roomIdx := headerIndex(header, "room")
	batchIdx := headerIndex(header, "batch", "section")
	courseIdx := headerIndex(header, "course")
	teacherIdx := headerIndex(header, "teacher")

	for _, raw := range rows[1:] {
		row := models.ClassRow{
			Day:     cell(raw, dayIdx),
			Slot:    cell(raw, slotIdx),
			Room:    cell(raw, roomIdx),
			Batch:   cell(raw, batchIdx),
			Course:  cell(raw, courseIdx),
			Teacher: cell(raw, teacherIdx),
		}
		if IsRoutineEntry(row) {
			out = append(out, row)
		}
	}
	return out
}
