// Package render expands a core.Model into the markdown text of a protokoll.
//
// Rendering is a pure function of the model: the same model always yields the same bytes.
// Meeting dates are printed in the offset the meeting carries, calendar events in the
// renderer's display location.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/fscs/prototool/pkg/attendance"
	"github.com/fscs/prototool/pkg/core"
)

//go:embed template/protokoll.md
var defaultTemplate string

// FallbackToken is printed where a count or quorum cannot be stated.
const FallbackToken = "n"

// HiddenDays is how long a fresh protokoll stays hidden after the meeting.
const HiddenDays = 4

// Renderer holds a parsed template.
type Renderer struct {
	tmpl *template.Template
	loc  *time.Location
}

type options struct {
	loc          *time.Location
	templatePath string
}

// Option configures a Renderer.
type Option func(*options)

// WithLocation sets the zone calendar events are displayed in. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// WithTemplateFile replaces the embedded template with the file at path.
// An empty path keeps the embedded template.
func WithTemplateFile(path string) Option {
	return func(o *options) {
		o.templatePath = path
	}
}

// New parses the template. Errors in a custom template surface here, not at render time.
func New(opts ...Option) (*Renderer, error) {
	o := options{loc: time.UTC}
	for _, opt := range opts {
		opt(&o)
	}

	text := defaultTemplate
	if o.templatePath != "" {
		data, err := os.ReadFile(o.templatePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read template: %w", err)
		}
		text = string(data)
	}

	r := &Renderer{loc: o.loc}
	tmpl, err := template.New("protokoll").Option("missingkey=error").Funcs(r.funcs()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	r.tmpl = tmpl

	return r, nil
}

// Render expands the model. A failed render returns no text at all.
func (r *Renderer) Render(m core.Model) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, m); err != nil {
		return "", fmt.Errorf("failed to render protokoll template: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"title":           Title,
		"machineDate":     MachineDate,
		"humanDate":       HumanDate,
		"hiddenUntil":     HiddenUntil,
		"attendanceLabel": AttendanceLabel,
		"quorum":          QuorumLabel,
		"present":         present,
		"excused":         excused,
		"regular":         byKind(core.AgendaRegular),
		"report":          byKind(core.AgendaReport),
		"normal":          normal,
		"misc":            byKind(core.AgendaMiscellaneous),
		"lateProposals":   LateProposals,
		"eventLine":       r.EventLine,
		"inc":             func(i int) int { return i + 1 },
	}
}

// Title is "<prefix> vom DD.MM.YYYY".
func Title(m core.Meeting) string {
	return m.Kind.TitlePrefix() + " vom " + HumanDate(m.DateTime)
}

// MachineDate is RFC 3339 in the offset t carries.
func MachineDate(t time.Time) string {
	return t.Format(time.RFC3339)
}

// HumanDate is DD.MM.YYYY.
func HumanDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// HiddenUntil is the calendar date HiddenDays after t, as YYYY-MM-DD.
func HiddenUntil(t time.Time) string {
	return t.AddDate(0, 0, HiddenDays).Format("2006-01-02")
}

// AttendanceLabel is the number of members present, or FallbackToken when there are none.
func AttendanceLabel(entries []core.Attendance) string {
	n := attendance.PresentCount(entries)
	if n == 0 {
		return FallbackToken
	}
	return strconv.Itoa(n)
}

// QuorumLabel is "ja" or "nein", or FallbackToken when quorum cannot be decided.
func QuorumLabel(entries []core.Attendance) string {
	switch attendance.Quorum(entries) {
	case attendance.QuorumMet:
		return "ja"
	case attendance.QuorumNotMet:
		return "nein"
	default:
		return FallbackToken
	}
}

// LateProposals lists every proposal created after the meeting's proposal deadline, in
// agenda order. Without a deadline nothing is late.
func LateProposals(m core.Meeting, items []core.AgendaItem) []core.Proposal {
	if m.ProposalDeadline.IsZero() {
		return nil
	}

	var late []core.Proposal
	for _, item := range items {
		for _, p := range item.Proposals {
			if p.CreatedAt.After(m.ProposalDeadline) {
				late = append(late, p)
			}
		}
	}
	return late
}

// EventLine is "DD.MM. <title> HH:MM Uhr <location>" in the renderer's location.
func (r *Renderer) EventLine(e core.CalendarEvent) string {
	start := e.Start.In(r.loc)
	line := fmt.Sprintf("%s %s %s Uhr %s", start.Format("02.01."), e.Title, start.Format("15:04"), e.Location)
	return strings.Join(strings.Fields(line), " ")
}

func byKind(kind core.AgendaKind) func([]core.AgendaItem) []core.AgendaItem {
	return func(items []core.AgendaItem) []core.AgendaItem {
		var out []core.AgendaItem
		for _, item := range items {
			if item.Kind == kind {
				out = append(out, item)
			}
		}
		return out
	}
}

// normal also collects items of unknown kind so nothing on the agenda is dropped.
func normal(items []core.AgendaItem) []core.AgendaItem {
	var out []core.AgendaItem
	for _, item := range items {
		switch item.Kind {
		case core.AgendaRegular, core.AgendaReport, core.AgendaMiscellaneous:
		default:
			out = append(out, item)
		}
	}
	return out
}

func present(entries []core.Attendance) []core.Attendance {
	var out []core.Attendance
	for _, e := range entries {
		if e.Present {
			out = append(out, e)
		}
	}
	return out
}

func excused(entries []core.Attendance) []core.Attendance {
	var out []core.Attendance
	for _, e := range entries {
		if e.Excused && !e.Present {
			out = append(out, e)
		}
	}
	return out
}
