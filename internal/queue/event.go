// Package queue defines message payloads exchanged over the message broker.
package queue

// AttendanceChangedEvent is published whenever an attendee's mark on a show
// changes state. It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type AttendanceChangedEvent struct {
	ShowID    string `json:"show_id"`
	ShowTitle string `json:"show_title"`
	Stage     string `json:"stage"`
	Day       string `json:"day"`
	Attendee  string `json:"attendee"`
	State     string `json:"state"`
	ChangedAt string `json:"changed_at"`
}

// ScheduleReloadedEvent is published after a schedule dataset replaces the
// one being served, whether from an upload or a timed reload.
type ScheduleReloadedEvent struct {
	Source     string   `json:"source"` // "upload" or "cron"
	Days       []string `json:"days"`
	ShowCount  int      `json:"show_count"`
	ReloadedAt string   `json:"reloaded_at"`
}
