package models

// TeacherInfo is one directory entry from the teacher-info (TIF) upload.
// Initial is the join key between schedule rows and the directory.
type TeacherInfo struct {
	Name        string `json:"name"`
	Initial     string `json:"initial"`
	Designation string `json:"designation,omitempty"`
	Mobile      string `json:"mobile,omitempty"`
	Email       string `json:"email,omitempty"`
	OfficeDesk  string `json:"officeDesk,omitempty"`
	DayOff      string `json:"dayOff,omitempty"`
}
