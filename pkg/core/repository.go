package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Source is the council API the pipeline pulls its data from.
// Implementations must not retry: a failed fetch aborts the run.
type Source interface {
	// FetchMeeting returns the first meeting at or after asOf.
	FetchMeeting(ctx context.Context, asOf time.Time) (Meeting, error)

	// FetchAgendaItems returns the meeting's agenda sorted by weight, ties in fetch order.
	FetchAgendaItems(ctx context.Context, meetingID uuid.UUID) ([]AgendaItem, error)

	// FetchPersonsByRole returns the roster for a role, e.g. "Rat".
	FetchPersonsByRole(ctx context.Context, role string) ([]Person, error)

	// FetchAbsences returns the absence records within scope.
	FetchAbsences(ctx context.Context, scope AbsenceScope) ([]AbsenceRecord, error)

	// FetchCalendarEvents returns the upcoming calendar events.
	FetchCalendarEvents(ctx context.Context) ([]CalendarEvent, error)
}

// AbsenceScope selects absence records either by meeting or by a date window.
// MeetingID takes precedence when set.
type AbsenceScope struct {
	MeetingID uuid.UUID
	Start     time.Time
	End       time.Time
}

// Repository stores rendered documents.
type Repository interface {
	// Save writes content to the relative path. Without force an existing target is
	// rejected with ErrTargetExists. Either the whole content is written or nothing is.
	// It returns the absolute path written.
	Save(ctx context.Context, path string, content []byte, force bool) (string, error)

	// Read returns the document stored at the relative path.
	Read(ctx context.Context, path string) ([]byte, error)
}

// Clipboard is the OS clipboard, text only.
type Clipboard interface {
	ReadText(ctx context.Context) (string, error)
	WriteText(ctx context.Context, text string) error
}

// Pad is the collaborative note service.
type Pad interface {
	// URLFor derives the note URL for a meeting date.
	URLFor(date time.Time) string

	// Open shows the note in a browser.
	Open(ctx context.Context, url string) error

	// Download fetches the raw note text.
	Download(ctx context.Context, url string) (string, error)
}
