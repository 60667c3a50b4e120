// Package attendance turns the council roster and its absence records into the attendance
// list of a meeting.
package attendance

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fscs/prototool/pkg/core"
)

// Policy decides who counts as present when nobody is asked.
type Policy string

const (
	// PolicyNobodyPresent leaves every presence flag unset.
	PolicyNobodyPresent Policy = "nobody"
	// PolicyAllAvailable marks everyone present who is not excused.
	PolicyAllAvailable Policy = "available"
)

// ParsePolicy validates a policy name. The empty string selects PolicyNobodyPresent.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", PolicyNobodyPresent:
		return PolicyNobodyPresent, nil
	case PolicyAllAvailable:
		return p, nil
	default:
		return "", fmt.Errorf("unknown attendance policy %q (want %q or %q)", s, PolicyNobodyPresent, PolicyAllAvailable)
	}
}

// Reconcile builds one entry per roster member. A member is excused iff one of the records
// names them and covers the meeting. Roster duplicates are dropped, keeping the first
// occurrence. Present starts false for everyone.
func Reconcile(meeting core.Meeting, roster []core.Person, absences []core.AbsenceRecord) []core.Attendance {
	excused := make(map[uuid.UUID]bool, len(absences))
	for _, a := range absences {
		if a.Covers(meeting) {
			excused[a.PersonID] = true
		}
	}

	seen := make(map[uuid.UUID]bool, len(roster))
	entries := make([]core.Attendance, 0, len(roster))
	for _, p := range roster {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true

		entries = append(entries, core.Attendance{
			Person:  p,
			Excused: excused[p.ID],
		})
	}

	return entries
}

// ApplyPolicy returns a copy of entries with presence set according to policy.
func ApplyPolicy(entries []core.Attendance, policy Policy) []core.Attendance {
	out := make([]core.Attendance, len(entries))
	for i, e := range entries {
		e.Present = policy == PolicyAllAvailable && !e.Excused
		out[i] = e
	}
	return out
}

// Apply returns a copy of entries in which exactly the selected identities are present.
// Excused members can be selected too. Identities not on the roster are ignored.
func Apply(entries []core.Attendance, selected []uuid.UUID) []core.Attendance {
	chosen := make(map[uuid.UUID]bool, len(selected))
	for _, id := range selected {
		chosen[id] = true
	}

	out := make([]core.Attendance, len(entries))
	for i, e := range entries {
		e.Present = chosen[e.Person.ID]
		out[i] = e
	}
	return out
}

// PresentCount counts the entries marked present.
func PresentCount(entries []core.Attendance) int {
	n := 0
	for _, e := range entries {
		if e.Present {
			n++
		}
	}
	return n
}
