package attendance_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fscs/prototool/pkg/attendance"
	"github.com/fscs/prototool/pkg/core"
)

func roster(names ...string) []core.Person {
	persons := make([]core.Person, len(names))
	for i, n := range names {
		persons[i] = core.Person{ID: uuid.New(), FirstName: n}
	}
	return persons
}

func TestReconcile(t *testing.T) {
	meeting := core.Meeting{ID: uuid.New(), DateTime: time.Date(2022, 5, 27, 18, 0, 0, 0, time.UTC)}

	t.Run("Excused Iff Covered", func(t *testing.T) {
		persons := roster("Valentin", "Elif", "Jonas")
		otherMeeting := uuid.New()
		absences := []core.AbsenceRecord{
			{PersonID: persons[1].ID, MeetingID: &meeting.ID},
			{PersonID: persons[2].ID, MeetingID: &otherMeeting},
		}

		entries := attendance.Reconcile(meeting, persons, absences)
		require.Len(t, entries, 3)
		assert.False(t, entries[0].Excused)
		assert.True(t, entries[1].Excused)
		assert.False(t, entries[2].Excused, "record for a different meeting")
		for _, e := range entries {
			assert.False(t, e.Present)
		}
	})

	t.Run("Every Person Exactly Once", func(t *testing.T) {
		persons := roster("Valentin", "Elif")
		persons = append(persons, persons[0])
		absences := []core.AbsenceRecord{
			{PersonID: persons[0].ID},
			{PersonID: persons[0].ID},
			{PersonID: uuid.New()},
		}

		entries := attendance.Reconcile(meeting, persons, absences)
		require.Len(t, entries, 2)
		assert.Equal(t, persons[0].ID, entries[0].Person.ID)
		assert.Equal(t, persons[1].ID, entries[1].Person.ID)
		assert.True(t, entries[0].Excused)
	})

	t.Run("Date Window", func(t *testing.T) {
		persons := roster("Valentin", "Elif")
		start := time.Date(2022, 5, 20, 0, 0, 0, 0, time.UTC)
		end := time.Date(2022, 5, 26, 0, 0, 0, 0, time.UTC)
		until := time.Date(2022, 5, 27, 0, 0, 0, 0, time.UTC)
		absences := []core.AbsenceRecord{
			{PersonID: persons[0].ID, Start: &start, End: &end},
			{PersonID: persons[1].ID, Start: &start, End: &until},
		}

		entries := attendance.Reconcile(meeting, persons, absences)
		assert.False(t, entries[0].Excused)
		assert.True(t, entries[1].Excused)
	})

	t.Run("Empty Roster", func(t *testing.T) {
		assert.Empty(t, attendance.Reconcile(meeting, nil, nil))
	})
}

func TestApplyPolicy(t *testing.T) {
	entries := []core.Attendance{
		{Person: core.Person{ID: uuid.New()}},
		{Person: core.Person{ID: uuid.New()}, Excused: true},
	}

	nobody := attendance.ApplyPolicy(entries, attendance.PolicyNobodyPresent)
	assert.Equal(t, 0, attendance.PresentCount(nobody))

	available := attendance.ApplyPolicy(entries, attendance.PolicyAllAvailable)
	assert.True(t, available[0].Present)
	assert.False(t, available[1].Present, "excused members are never forced present")

	assert.False(t, entries[0].Present, "input is left untouched")
}

func TestApply(t *testing.T) {
	t.Run("Selection By Identity", func(t *testing.T) {
		// two members with the same display name
		twins := []core.Attendance{
			{Person: core.Person{ID: uuid.New(), FirstName: "Jonas"}},
			{Person: core.Person{ID: uuid.New(), FirstName: "Jonas"}},
		}

		out := attendance.Apply(twins, []uuid.UUID{twins[1].Person.ID})
		assert.False(t, out[0].Present)
		assert.True(t, out[1].Present)
	})

	t.Run("Excused Can Be Present", func(t *testing.T) {
		entries := []core.Attendance{{Person: core.Person{ID: uuid.New()}, Excused: true}}

		out := attendance.Apply(entries, []uuid.UUID{entries[0].Person.ID})
		assert.True(t, out[0].Present)
		assert.True(t, out[0].Excused)
	})

	t.Run("Unknown Identities Ignored", func(t *testing.T) {
		entries := []core.Attendance{{Person: core.Person{ID: uuid.New()}}}

		out := attendance.Apply(entries, []uuid.UUID{uuid.New()})
		require.Len(t, out, 1)
		assert.False(t, out[0].Present)
	})
}

func TestParsePolicy(t *testing.T) {
	p, err := attendance.ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, attendance.PolicyNobodyPresent, p)

	p, err = attendance.ParsePolicy("Available")
	require.NoError(t, err)
	assert.Equal(t, attendance.PolicyAllAvailable, p)

	_, err = attendance.ParsePolicy("everyone")
	assert.Error(t, err)
}
