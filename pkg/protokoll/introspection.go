package protokoll

import (
	"time"

	"github.com/aretw0/introspection"

	"github.com/fscs/prototool/pkg/attendance"
)

// RunRecord summarizes the last run.
type RunRecord struct {
	Mode  string    `json:"mode"`
	At    time.Time `json:"at"`
	Path  string    `json:"path,omitempty"`
	Pad   string    `json:"pad_url,omitempty"`
	Error string    `json:"error,omitempty"`
}

// GeneratorState exposes internal state for observability.
type GeneratorState struct {
	Role      string            `json:"role"`
	Policy    attendance.Policy `json:"attendance_policy"`
	Clipboard bool              `json:"clipboard"`
	Pad       bool              `json:"pad"`
	Selector  bool              `json:"selector"`
	LastRun   *RunRecord        `json:"last_run,omitempty"`
}

// State implements introspection.Introspectable.
func (g *Generator) State() any {
	g.mu.RLock()
	defer g.mu.RUnlock()

	state := GeneratorState{
		Role:      g.role,
		Policy:    g.policy,
		Clipboard: g.clipboard != nil,
		Pad:       g.pad != nil,
		Selector:  g.selector != nil,
	}
	if g.last != nil {
		last := *g.last
		state.LastRun = &last
	}
	return state
}

// ComponentType implements introspection.Component.
func (g *Generator) ComponentType() string {
	return "generator"
}

// Components returns the adapters that describe themselves, for status output.
func (g *Generator) Components() []introspection.Component {
	var out []introspection.Component
	for _, c := range []any{g.source, g.repo, g.clipboard, g.pad} {
		if comp, ok := c.(introspection.Component); ok {
			out = append(out, comp)
		}
	}
	return out
}

func (g *Generator) record(mode Mode, res Result, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	rec := &RunRecord{Mode: mode.String(), At: time.Now(), Path: res.Path, Pad: res.PadURL}
	if err != nil {
		rec.Error = err.Error()
	}
	g.last = rec
}

var _ introspection.Introspectable = (*Generator)(nil)
var _ introspection.Component = (*Generator)(nil)
