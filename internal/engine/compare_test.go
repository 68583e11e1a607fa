package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/grounddb/internal/domain"
)

func TestEncodeClock(t *testing.T) {
	testCases := []struct {
		in   string
		want int
	}{
		{"08:00", 800},
		{"09:30", 930},
		{"00:00", 0},
		{"23:59", 2359},
		{"8:5", 805},
		// Fragments past the minute are ignored, as in the reference parser.
		{"8:15:30", 815},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := encodeClock(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEncodeClock_Malformed(t *testing.T) {
	for _, in := range []string{"", "morning", "08", "ab:cd", "8:"} {
		t.Run(in, func(t *testing.T) {
			_, err := encodeClock(in)
			assert.Error(t, err)
		})
	}
}

func TestEvaluate_TimeBeforeOpenFields(t *testing.T) {
	// A leaveAt constraint must never be swallowed by open-field
	// handling, even with open matching enabled.
	e := newTestEngine()
	rec := domain.Record{"leaveAt": "08:00"}

	ok, fault := e.evaluate(domain.Train, rec, domain.Constraint{Slot: "leaveAt", Value: "09:00"}, true)
	require.Nil(t, fault)
	assert.False(t, ok, "08:00 leaves earlier than the requested 09:00")
}

func TestEvaluate_NonStringValueIsFault(t *testing.T) {
	e := newTestEngine()
	rec := domain.Record{"id": float64(7)}

	_, fault := e.evaluate(domain.Restaurant, rec, domain.Constraint{Slot: "id", Value: "7"}, true)
	require.NotNil(t, fault)
	assert.Equal(t, FaultBadValue, fault.Kind)
}

func TestEvaluate_RecordTimeMalformedIsFault(t *testing.T) {
	e := newTestEngine()
	rec := domain.Record{"arriveBy": "around ten"}

	_, fault := e.evaluate(domain.Train, rec, domain.Constraint{Slot: "arriveBy", Value: "10:00"}, true)
	require.NotNil(t, fault)
	assert.Equal(t, FaultBadTime, fault.Kind)
}

func TestConstraintError_Message(t *testing.T) {
	err := &ConstraintError{
		Kind:   FaultBadTime,
		Domain: domain.Train,
		Slot:   "leaveAt",
		Value:  "morning",
		Detail: "constraint value is not HH:MM",
	}
	assert.Contains(t, err.Error(), "BAD_TIME")
	assert.Contains(t, err.Error(), "leaveAt")
	assert.Contains(t, err.Error(), "train")
}
