package core

import (
	"path"
	"slices"
	"time"
)

// Model is the immutable input of the renderer.
type Model struct {
	Meeting     Meeting
	AgendaItems []AgendaItem
	Attendance  []Attendance
	Events      []CalendarEvent
}

// NewModel composes already fetched data into a Model. Only the meeting is required;
// every list may be empty. Slices are copied so later changes to the inputs do not leak in.
func NewModel(meeting *Meeting, items []AgendaItem, attendance []Attendance, events []CalendarEvent) (Model, error) {
	if meeting == nil {
		return Model{}, ErrMissingMeeting
	}

	return Model{
		Meeting:     *meeting,
		AgendaItems: slices.Clone(items),
		Attendance:  slices.Clone(attendance),
		Events:      slices.Clone(events),
	}, nil
}

// DocumentPath derives the storage path of a protokoll, relative to the content directory,
// e.g. protokolle/2022/05-27-vv-protokoll.md. The date is read in its own location.
func DocumentPath(date time.Time, kind MeetingKind) string {
	return path.Join(
		"protokolle",
		date.Format("2006"),
		date.Format("01-02")+"-"+kind.FilePrefix()+"protokoll.md",
	)
}
