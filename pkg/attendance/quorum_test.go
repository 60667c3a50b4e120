package attendance_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/fscs/prototool/pkg/attendance"
	"github.com/fscs/prototool/pkg/core"
)

func withPresent(size, present int) []core.Attendance {
	entries := make([]core.Attendance, size)
	for i := range entries {
		entries[i] = core.Attendance{Person: core.Person{ID: uuid.New()}, Present: i < present}
	}
	return entries
}

func TestQuorum(t *testing.T) {
	cases := []struct {
		name    string
		size    int
		present int
		want    attendance.QuorumState
	}{
		{"Majority", 5, 3, attendance.QuorumMet},
		{"Nobody", 5, 0, attendance.QuorumNotMet},
		{"Exactly Half", 4, 2, attendance.QuorumNotMet},
		{"Everyone", 4, 4, attendance.QuorumMet},
		{"Empty Roster", 0, 0, attendance.QuorumUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, attendance.Quorum(withPresent(tc.size, tc.present)))
		})
	}
}
