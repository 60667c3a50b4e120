package attendance

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/fscs/prototool/pkg/core"
)

// Selector asks an operator who attended.
type Selector interface {
	// Select returns the identities of the members present.
	Select(ctx context.Context, entries []core.Attendance) ([]uuid.UUID, error)
}

// PromptSelector asks on the terminal with a multi-select list.
// Options are keyed by identity, so members sharing a name stay distinguishable.
type PromptSelector struct {
	Title string
}

// Select implements Selector. Non-excused members are preselected.
func (s PromptSelector) Select(ctx context.Context, entries []core.Attendance) ([]uuid.UUID, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	title := s.Title
	if title == "" {
		title = "Anwesende Räte"
	}

	options := make([]huh.Option[uuid.UUID], 0, len(entries))
	for _, e := range entries {
		label := e.Person.Name()
		if e.Excused {
			label += " (abgemeldet)"
		}
		options = append(options, huh.NewOption(label, e.Person.ID).Selected(!e.Excused))
	}

	var selected []uuid.UUID
	field := huh.NewMultiSelect[uuid.UUID]().
		Title(title).
		Options(options...).
		Value(&selected)

	if err := huh.NewForm(huh.NewGroup(field)).RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("attendance selection aborted: %w", err)
	}

	return selected, nil
}

var _ Selector = PromptSelector{}
