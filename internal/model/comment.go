package model

import "time"

// Comment is one remark left on a show.  Comments are a flat list per show
// ordered by creation time; the planner shows them under the show card.
//
// Fields:
//  ID        – random UUID assigned at creation.
//  ShowID    – schedule identifier of the show commented on.
//  Author    – display name of the commenter.
//  Text      – the comment body, trimmed, never empty.
//  CreatedAt – creation timestamp (UTC).
type Comment struct {
	ID        string    `json:"id"`
	ShowID    string    `json:"show_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// PlannerExport is the full shared state of one planning group, returned by
// the export endpoint and used by the local snapshot store as its on-disk
// shape.  Attendance and comments are grouped by show ID.
type PlannerExport struct {
	Attendance map[string][]Attendance `json:"attendance"`
	Comments   map[string][]Comment    `json:"comments"`
}
