package protokoll

import (
	"fmt"
	"strings"

	"github.com/fscs/prototool/pkg/core"
)

// Mode selects where a run takes its text from and where it puts it.
type Mode int

const (
	// ModeLocal renders and writes below the content directory.
	ModeLocal Mode = iota
	// ModeExportClipboard renders onto the clipboard.
	ModeExportClipboard
	// ModeExportPad renders onto the clipboard and opens the meeting's note.
	ModeExportPad
	// ModeImportClipboard writes the clipboard text below the content directory.
	ModeImportClipboard
	// ModeImportPad downloads a note and writes it below the content directory.
	ModeImportPad
)

func (m Mode) String() string {
	switch m {
	case ModeLocal:
		return "local"
	case ModeExportClipboard:
		return "to-clipboard"
	case ModeExportPad:
		return "to-pad"
	case ModeImportClipboard:
		return "from-clipboard"
	case ModeImportPad:
		return "from-pad"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// IsImport reports whether the mode writes existing text instead of rendering.
func (m Mode) IsImport() bool {
	return m == ModeImportClipboard || m == ModeImportPad
}

// Flags are the four mutually exclusive sink and source switches.
type Flags struct {
	ToClipboard   bool
	FromClipboard bool
	ToPad         bool
	FromPad       bool
}

// ResolveMode picks the mode the flags ask for. Setting more than one is a conflict;
// setting none means ModeLocal.
func ResolveMode(f Flags) (Mode, error) {
	var set []string
	mode := ModeLocal

	check := func(on bool, name string, m Mode) {
		if on {
			set = append(set, name)
			mode = m
		}
	}
	check(f.ToClipboard, "--to-clipboard", ModeExportClipboard)
	check(f.FromClipboard, "--from-clipboard", ModeImportClipboard)
	check(f.ToPad, "--to-pad", ModeExportPad)
	check(f.FromPad, "--from-pad", ModeImportPad)

	if len(set) > 1 {
		return ModeLocal, fmt.Errorf("%w: %s", core.ErrConfigurationConflict, strings.Join(set, ", "))
	}
	return mode, nil
}
