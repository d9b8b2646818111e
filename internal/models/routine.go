package models

// Upload kinds accepted by the files and publish endpoints.
const (
	KindRoutine     = "routine"
	KindTeacherInfo = "tif"
)

// ClassRow is one scheduled class occurrence from the published routine.
type ClassRow struct {
	Day     string `json:"day"`
	Slot    string `json:"slot"`
	Room    string `json:"room"`
	Batch   string `json:"batch"`
	Course  string `json:"course"`
	Teacher string `json:"teacher"`
}

// UploadMeta carries the version/effective-date tag attached at upload time.
// It is independent of the parsed content and flows into the published meta.
type UploadMeta struct {
	Version       string `json:"version,omitempty"`
	EffectiveFrom string `json:"effectiveFrom,omitempty"`
}

// UploadItem describes the currently stored raw upload for a kind.
type UploadItem struct {
	Key  string     `json:"key"`
	Kind string     `json:"kind"`
	Meta UploadMeta `json:"meta"`
}

// PublishMeta is the metadata attached to a published payload.
type PublishMeta struct {
	FileName      string `json:"fileName,omitempty"`
	Version       string `json:"version,omitempty"`
	EffectiveFrom string `json:"effectiveFrom,omitempty"`
}

// RoutinePayload is the published routine document consumed by all
// read-only views. An empty Data slice means nothing is published.
type RoutinePayload struct {
	Data      []ClassRow  `json:"data"`
	Meta      PublishMeta `json:"meta"`
	UpdatedAt string      `json:"updatedAt,omitempty"`
}

// TeacherInfoPayload is the published teacher directory document.
type TeacherInfoPayload struct {
	Data      []TeacherInfo `json:"data"`
	Meta      PublishMeta   `json:"meta"`
	UpdatedAt string        `json:"updatedAt,omitempty"`
}

// PublishStatus reports which payloads are currently published.
type PublishStatus struct {
	Routine     bool `json:"routine"`
	TeacherInfo bool `json:"tif"`
}
