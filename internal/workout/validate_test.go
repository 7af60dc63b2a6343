package workout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_AcceptsPresets(t *testing.T) {
	for _, info := range Presets() {
		assert.NoError(t, Validate(info.Plan), info.Title)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		plan    WorkoutPlan
		problem string
	}{
		{
			name:    "empty plan",
			plan:    WorkoutPlan{},
			problem: "plan has no stages",
		},
		{
			name:    "no exercises",
			plan:    WorkoutPlan{{Type: StageWork, Name: "Round", Duration: 10}},
			problem: "has no exercises",
		},
		{
			name:    "duration mismatch",
			plan:    WorkoutPlan{{Type: StageWork, Name: "Round", Duration: 30, Exercises: []Exercise{{Name: "A", Duration: 10}}}},
			problem: "does not match exercise total 10",
		},
		{
			name:    "unknown type",
			plan:    WorkoutPlan{{Type: StageType(9), Name: "Odd", Duration: 5, Exercises: []Exercise{{Name: "A", Duration: 5}}}},
			problem: "unknown type StageType(9)",
		},
		{
			name:    "blank stage name",
			plan:    WorkoutPlan{{Type: StageRest, Name: "  ", Duration: 5, Exercises: []Exercise{{Name: "A", Duration: 5}}}},
			problem: "name is empty",
		},
		{
			name:    "non-positive exercise",
			plan:    WorkoutPlan{{Type: StageRest, Name: "Rest", Duration: 5, Exercises: []Exercise{{Name: "A", Duration: 5}, {Name: "B", Duration: 0}}}},
			problem: `exercise 2 ("B") duration must be positive`,
		},
		{
			name:    "unnamed exercise",
			plan:    WorkoutPlan{{Type: StageRest, Name: "Rest", Duration: 5, Exercises: []Exercise{{Duration: 5}}}},
			problem: "exercise 1 has no name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.plan)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPlan))

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Contains(t, err.Error(), tt.problem)
		})
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	plan := WorkoutPlan{
		{Type: StageWork, Name: "", Duration: 0},
		{Type: StageRest, Name: "Rest", Duration: 10, Exercises: []Exercise{{Name: "R", Duration: 5}}},
	}

	var validationErr *ValidationError
	require.ErrorAs(t, Validate(plan), &validationErr)
	assert.Len(t, validationErr.Problems, 4)
}

func TestParseStageType(t *testing.T) {
	for _, st := range AllStageTypes {
		parsed, err := ParseStageType(st.String())
		require.NoError(t, err)
		assert.Equal(t, st, parsed)
	}

	parsed, err := ParseStageType(" work ")
	require.NoError(t, err)
	assert.Equal(t, StageWork, parsed)

	_, err = ParseStageType("SPRINT")
	assert.Error(t, err)

	_, err = StageType(7).MarshalText()
	assert.Error(t, err)
}
