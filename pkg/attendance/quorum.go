package attendance

import "github.com/fscs/prototool/pkg/core"

// QuorumState is the ternary outcome of a quorum check.
type QuorumState int

const (
	QuorumUnknown QuorumState = iota
	QuorumMet
	QuorumNotMet
)

func (q QuorumState) String() string {
	switch q {
	case QuorumMet:
		return "met"
	case QuorumNotMet:
		return "not met"
	default:
		return "unknown"
	}
}

// Quorum is met when more than half of the roster is present.
// An empty roster has no quorum either way.
func Quorum(entries []core.Attendance) QuorumState {
	if len(entries) == 0 {
		return QuorumUnknown
	}
	if PresentCount(entries)*2 > len(entries) {
		return QuorumMet
	}
	return QuorumNotMet
}
