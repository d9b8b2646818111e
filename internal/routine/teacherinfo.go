package routine

import (
	"strings"

	"github.com/campus-routine/routine-api/internal/models"
)

// InitialOf extracts the teacher initial from a schedule teacher field.
// The field is either "INI - Full Name" or a bare initial; the part before
// the first " - " is the initial, trimmed and uppercased.
func InitialOf(teacherField string) string {
	s := strings.TrimSpace(teacherField)
	if i := strings.Index(s, " - "); i >= 0 {
		s = s[:i]
	}
	return strings.ToUpper(strings.TrimSpace(s))
}

// ParseTeacherInfo maps a raw sheet grid to directory entries. Columns are
// header-driven like Normalize. Day-off may span several columns whose
// headers contain "day off"; their values are joined with ", ". Rows
// without an initial are dropped.
func ParseTeacherInfo(rows [][]string) []models.TeacherInfo {
	out := []models.TeacherInfo{}
	if len(rows) == 0 {
		return out
	}

	header := rows[0]
	nameIdx := headerIndex(header, "name")
	initialIdx := headerIndex(header, "initial")
	desigIdx := headerIndex(header, "designation")
	mobileIdx := headerIndex(header, "mobile", "phone")
	emailIdx := headerIndex(header, "email")
	deskIdx := headerIndex(header, "desk", "office")

	var dayOffIdxs []int
	for i, h := range header {
		if strings.Contains(strings.ToLower(h), "day off") {
			dayOffIdxs = append(dayOffIdxs, i)
		}
	}

	for _, raw := range rows[1:] {
		initial := strings.ToUpper(cell(raw, initialIdx))
		if initial == "" {
			continue
		}

		var offs []string
		for _, idx := range dayOffIdxs {
			if v := cell(raw, idx); v != "" {
				offs = append(offs, v)
			}
		}

		out = append(out, models.TeacherInfo{
			Name:        cell(raw, nameIdx),
			Initial:     initial,
			Designation: cell(raw, desigIdx),
			Mobile:      cell(raw, mobileIdx),
			Email:       cell(raw, emailIdx),
			OfficeDesk:  cell(raw, deskIdx),
			DayOff:      strings.Join(offs, ", "),
		})
	}
	return out
}

// FindByInitial returns the directory entry whose initial matches q after
// normalization, or nil when absent.
func FindByInitial(list []models.TeacherInfo, q string) *models.TeacherInfo {
	want := InitialOf(q)
	if want == "" {
		return nil
	}
	for i := range list {
		if strings.ToUpper(strings.TrimSpace(list[i].Initial)) == want {
			return &list[i]
		}
	}
	return nil
}

// DayOffList splits a directory entry's day-off field on comma and slash.
func DayOffList(t models.TeacherInfo) []string {
	var out []string
	for _, part := range strings.FieldsFunc(t.DayOff, func(r rune) bool {
		return r == ',' || r == '/'
	}) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
