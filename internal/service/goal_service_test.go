package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redirectflow-go/internal/dto"
)

func TestGetGoalDefaults(t *testing.T) {
	setupTestDB(t)

	goal, err := GetGoal("2026-08")
	require.NoError(t, err)
	assert.Zero(t, goal.ID)
	assert.EqualValues(t, defaultTargetAmount, goal.TargetAmount)
	assert.Equal(t, defaultTargetPoints, goal.TargetPoints)

	_, err = GetGoal("2026-8")
	assert.Error(t, err)
}

func TestUpsertGoal(t *testing.T) {
	setupTestDB(t)

	created, err := UpsertGoal("2026-08", dto.UpsertGoalRequest{
		TargetAmount: 5_000_000,
		TargetPoints: 500,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	updated, err := UpsertGoal("2026-08", dto.UpsertGoalRequest{
		TargetAmount: 7_500_000,
		TargetPoints: 750,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	goal, err := GetGoal("2026-08")
	require.NoError(t, err)
	assert.EqualValues(t, 7_500_000, goal.TargetAmount)
	assert.Equal(t, 750, goal.TargetPoints)

	// other months stay on defaults
	other, err := GetGoal("2026-09")
	require.NoError(t, err)
	assert.EqualValues(t, defaultTargetAmount, other.TargetAmount)
}
