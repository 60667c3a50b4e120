// Package core holds the protokoll domain: meetings, agenda items, the council roster and
// the ports the generation pipeline talks to.
package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Meeting is a scheduled council meeting (Sitzung). Its agenda is fetched separately.
type Meeting struct {
	ID               uuid.UUID   `json:"id"`
	DateTime         time.Time   `json:"datetime"`
	Kind             MeetingKind `json:"kind"`
	ProposalDeadline time.Time   `json:"antragsfrist"`
}

// AgendaKind controls the section an agenda item is rendered in.
type AgendaKind string

const (
	AgendaRegular       AgendaKind = "regularia"
	AgendaReport        AgendaKind = "bericht"
	AgendaNormal        AgendaKind = "normal"
	AgendaMiscellaneous AgendaKind = "verschiedenes"
)

// AgendaItem is a single entry (Top) of a meeting's agenda.
type AgendaItem struct {
	Weight    int64      `json:"weight"`
	Name      string     `json:"name"`
	Body      string     `json:"inhalt"`
	Kind      AgendaKind `json:"kind"`
	Proposals []Proposal `json:"anträge"`
}

// Proposal is a motion (Antrag) attached to an agenda item.
type Proposal struct {
	Title         string    `json:"titel"`
	Text          string    `json:"antragstext"`
	Justification string    `json:"begründung"`
	CreatedAt     time.Time `json:"created_at"`
}

// Person is a member of the council roster.
type Person struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// Name returns the display name of the person.
func (p Person) Name() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// AbsenceRecord (Abmeldung) excuses a person either for one meeting or for a date window.
// A record with neither a meeting nor a window set applies to whatever it was fetched for.
type AbsenceRecord struct {
	PersonID  uuid.UUID  `json:"person_id"`
	MeetingID *uuid.UUID `json:"sitzung_id,omitempty"`
	Start     *time.Time `json:"start,omitempty"`
	End       *time.Time `json:"end,omitempty"`
}

// Covers reports whether the record excuses its person for the given meeting.
func (a AbsenceRecord) Covers(m Meeting) bool {
	if a.MeetingID != nil {
		return *a.MeetingID == m.ID
	}

	day := civilDate(m.DateTime)
	if a.Start != nil && day < civilDate(*a.Start) {
		return false
	}
	if a.End != nil && day > civilDate(*a.End) {
		return false
	}
	return true
}

// Attendance joins a roster member with their excused and present flags.
// Excused and Present are independent: an excused person may still turn up.
type Attendance struct {
	Person  Person
	Excused bool
	Present bool
}

// CalendarEvent is an upcoming event shown at the end of the protokoll.
type CalendarEvent struct {
	Title    string    `json:"summary"`
	Location string    `json:"location"`
	Start    time.Time `json:"start"`
}

// civilDate encodes the calendar date of t, read in its own location, as YYYYMMDD.
func civilDate(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
