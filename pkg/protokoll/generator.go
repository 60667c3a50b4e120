// Package protokoll drives a run: it assembles the model from the API, renders it, and
// moves the text between the content directory, the clipboard and the pad.
package protokoll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fscs/prototool/pkg/attendance"
	"github.com/fscs/prototool/pkg/core"
	"github.com/fscs/prototool/pkg/frontmatter"
	"github.com/fscs/prototool/pkg/render"
)

// DefaultRole is the roster whose attendance is tracked.
const DefaultRole = "Rat"

var errNoAdapter = errors.New("not configured")

// Generator owns the components of a run. It is safe to use from one goroutine at a time.
type Generator struct {
	source    core.Source
	repo      core.Repository
	renderer  *render.Renderer
	clipboard core.Clipboard
	pad       core.Pad
	selector  attendance.Selector
	policy    attendance.Policy
	role      string
	logger    *slog.Logger

	mu   sync.RWMutex
	last *RunRecord
}

// Option configures a Generator.
type Option func(*Generator)

// WithClipboard sets the clipboard used by the clipboard and pad modes.
func WithClipboard(c core.Clipboard) Option {
	return func(g *Generator) { g.clipboard = c }
}

// WithPad sets the pad used by the pad modes.
func WithPad(p core.Pad) Option {
	return func(g *Generator) { g.pad = p }
}

// WithSelector sets who is asked for attendance when a request is interactive.
func WithSelector(s attendance.Selector) Option {
	return func(g *Generator) { g.selector = s }
}

// WithPolicy sets the attendance policy for non-interactive runs.
func WithPolicy(p attendance.Policy) Option {
	return func(g *Generator) {
		if p != "" {
			g.policy = p
		}
	}
}

// WithRole sets the roster role.
func WithRole(role string) Option {
	return func(g *Generator) {
		if role != "" {
			g.role = role
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a generator. source, repo and renderer are required.
func New(source core.Source, repo core.Repository, renderer *render.Renderer, opts ...Option) (*Generator, error) {
	if source == nil || repo == nil || renderer == nil {
		return nil, errors.New("protokoll: source, repository and renderer are required")
	}

	g := &Generator{
		source:   source,
		repo:     repo,
		renderer: renderer,
		policy:   attendance.PolicyNobodyPresent,
		role:     DefaultRole,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Request describes one run.
type Request struct {
	Mode Mode
	// AsOf selects the next meeting at or after it. It also dates the note for
	// ModeImportPad when PadURL is empty.
	AsOf time.Time
	// PadURL is the note to import in ModeImportPad.
	PadURL string
	// Force replaces an existing document.
	Force bool
	// Ask lets the selector decide attendance instead of the policy.
	Ask bool
}

// Result reports what a run produced.
type Result struct {
	Mode Mode
	// Path is the absolute path written, empty for export modes without a local write.
	Path string
	// PadURL is the note opened or downloaded.
	PadURL string
	// Meeting is set when the run fetched one.
	Meeting *core.Meeting
}

// Build fetches everything a protokoll is made of and reconciles attendance.
// A failed fetch aborts the build; nothing is retried.
func (g *Generator) Build(ctx context.Context, asOf time.Time, ask bool) (core.Model, error) {
	g.logger.Info("fetching sitzung", "as_of", asOf.Format(time.RFC3339))
	meeting, err := g.source.FetchMeeting(ctx, asOf)
	if err != nil {
		return core.Model{}, err
	}

	g.logger.Info("fetching tops", "sitzung", meeting.ID)
	items, err := g.source.FetchAgendaItems(ctx, meeting.ID)
	if err != nil {
		return core.Model{}, err
	}

	g.logger.Info("fetching räte and abmeldungen", "role", g.role)
	roster, err := g.source.FetchPersonsByRole(ctx, g.role)
	if err != nil {
		return core.Model{}, err
	}
	absences, err := g.source.FetchAbsences(ctx, core.AbsenceScope{MeetingID: meeting.ID})
	if err != nil {
		return core.Model{}, err
	}

	entries := attendance.Reconcile(meeting, roster, absences)
	if ask && g.selector != nil {
		selected, err := g.selector.Select(ctx, entries)
		if err != nil {
			return core.Model{}, err
		}
		entries = attendance.Apply(entries, selected)
	} else {
		entries = attendance.ApplyPolicy(entries, g.policy)
	}

	g.logger.Info("fetching events")
	events, err := g.source.FetchCalendarEvents(ctx)
	if err != nil {
		return core.Model{}, err
	}

	return core.NewModel(&meeting, items, entries, events)
}

// Run executes req. Export modes render completely before anything is written, so a failed
// render or fetch never leaves a partial document behind.
func (g *Generator) Run(ctx context.Context, req Request) (res Result, err error) {
	res.Mode = req.Mode
	defer func() { g.record(req.Mode, res, err) }()

	if req.Mode.IsImport() {
		return g.runImport(ctx, req, res)
	}
	return g.runExport(ctx, req, res)
}

func (g *Generator) runExport(ctx context.Context, req Request, res Result) (Result, error) {
	switch req.Mode {
	case ModeExportClipboard, ModeExportPad:
		if g.clipboard == nil {
			return res, fmt.Errorf("%w: clipboard %w", core.ErrClipboard, errNoAdapter)
		}
	}
	if req.Mode == ModeExportPad && g.pad == nil {
		return res, fmt.Errorf("pad %w", errNoAdapter)
	}

	model, err := g.Build(ctx, req.AsOf, req.Ask)
	if err != nil {
		return res, err
	}
	res.Meeting = &model.Meeting

	text, err := g.renderer.Render(model)
	if err != nil {
		return res, err
	}

	switch req.Mode {
	case ModeExportClipboard:
		if err := g.clipboard.WriteText(ctx, text); err != nil {
			return res, err
		}
		g.logger.Info("copied protokoll to clipboard")

	case ModeExportPad:
		res.PadURL = g.pad.URLFor(model.Meeting.DateTime)
		if err := g.clipboard.WriteText(ctx, text); err != nil {
			return res, err
		}
		if err := g.pad.Open(ctx, res.PadURL); err != nil {
			return res, err
		}
		g.logger.Info("copied protokoll to clipboard, paste it into the pad", "url", res.PadURL)

	default:
		rel := core.DocumentPath(model.Meeting.DateTime, model.Meeting.Kind)
		res.Path, err = g.repo.Save(ctx, rel, []byte(text), req.Force)
		if err != nil {
			return res, err
		}
		g.logger.Info("created protokoll", "path", res.Path)
	}

	return res, nil
}

func (g *Generator) runImport(ctx context.Context, req Request, res Result) (Result, error) {
	var text string

	switch req.Mode {
	case ModeImportClipboard:
		if g.clipboard == nil {
			return res, fmt.Errorf("%w: clipboard %w", core.ErrClipboard, errNoAdapter)
		}
		t, err := g.clipboard.ReadText(ctx)
		if err != nil {
			return res, err
		}
		text = t

	case ModeImportPad:
		if g.pad == nil {
			return res, fmt.Errorf("pad %w", errNoAdapter)
		}
		res.PadURL = req.PadURL
		if res.PadURL == "" {
			res.PadURL = g.pad.URLFor(req.AsOf)
		}
		g.logger.Info("downloading pad", "url", res.PadURL)
		t, err := g.pad.Download(ctx, res.PadURL)
		if err != nil {
			return res, err
		}
		text = t
	}

	rec, err := frontmatter.Recover(text)
	if err != nil {
		return res, fmt.Errorf("unable to determine protokoll date: %w", err)
	}

	res.Path, err = g.repo.Save(ctx, rec.Path(), []byte(text), req.Force)
	if err != nil {
		return res, err
	}
	g.logger.Info("created protokoll", "path", res.Path)

	return res, nil
}
