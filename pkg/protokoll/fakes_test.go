package protokoll_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fscs/prototool/pkg/core"
)

type fakeSource struct {
	meeting  core.Meeting
	items    []core.AgendaItem
	persons  []core.Person
	absences []core.AbsenceRecord
	events   []core.CalendarEvent

	failOn string
	calls  []string
	scope  core.AbsenceScope
	role   string
}

func (f *fakeSource) fail(name string) error {
	f.calls = append(f.calls, name)
	if f.failOn == name {
		return fmt.Errorf("fetching %s: %w", name, core.ErrNetwork)
	}
	return nil
}

func (f *fakeSource) FetchMeeting(ctx context.Context, asOf time.Time) (core.Meeting, error) {
	return f.meeting, f.fail("meeting")
}

func (f *fakeSource) FetchAgendaItems(ctx context.Context, id uuid.UUID) ([]core.AgendaItem, error) {
	return f.items, f.fail("tops")
}

func (f *fakeSource) FetchPersonsByRole(ctx context.Context, role string) ([]core.Person, error) {
	f.role = role
	return f.persons, f.fail("persons")
}

func (f *fakeSource) FetchAbsences(ctx context.Context, scope core.AbsenceScope) ([]core.AbsenceRecord, error) {
	f.scope = scope
	return f.absences, f.fail("absences")
}

func (f *fakeSource) FetchCalendarEvents(ctx context.Context) ([]core.CalendarEvent, error) {
	return f.events, f.fail("events")
}

type memRepo struct {
	docs map[string][]byte
	err  error
}

func newMemRepo() *memRepo {
	return &memRepo{docs: map[string][]byte{}}
}

func (m *memRepo) Save(ctx context.Context, path string, content []byte, force bool) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if _, ok := m.docs[path]; ok && !force {
		return "", fmt.Errorf("%w: %w: %s", core.ErrFilesystem, core.ErrTargetExists, path)
	}
	m.docs[path] = content
	return "/site/content/de/" + path, nil
}

func (m *memRepo) Read(ctx context.Context, path string) ([]byte, error) {
	data, ok := m.docs[path]
	if !ok {
		return nil, core.ErrNotFound
	}
	return data, nil
}

type memClipboard struct {
	text   string
	writes int
	err    error
}

func (c *memClipboard) ReadText(ctx context.Context) (string, error) {
	return c.text, c.err
}

func (c *memClipboard) WriteText(ctx context.Context, text string) error {
	if c.err != nil {
		return c.err
	}
	c.writes++
	c.text = text
	return nil
}

type fakePad struct {
	notes  map[string]string
	opened []string
}

func (p *fakePad) URLFor(date time.Time) string {
	return "https://pad.example.org/" + date.Format("2006-01-02") + "-FSR-Informatik"
}

func (p *fakePad) Open(ctx context.Context, url string) error {
	p.opened = append(p.opened, url)
	return nil
}

func (p *fakePad) Download(ctx context.Context, url string) (string, error) {
	text, ok := p.notes[url]
	if !ok {
		return "", fmt.Errorf("download %s: %w", url, core.ErrNotFound)
	}
	return text, nil
}

type staticSelector struct {
	pick func([]core.Attendance) []uuid.UUID
	err  error
}

func (s staticSelector) Select(ctx context.Context, entries []core.Attendance) ([]uuid.UUID, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.pick(entries), nil
}
