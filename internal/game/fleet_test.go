package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/shipyard/internal/integrity"
)

func TestValidateFleet(t *testing.T) {
	intact := NewShip("alice", chain(t))
	splitShip := NewShip("bob", split(t))
	damaged := NewShip("carol", chain(t))
	require.NoError(t, damaged.Destroy(at(0, 1)))

	results, err := ValidateFleet(context.Background(), []*Ship{intact, splitShip, damaged})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, integrity.OutcomeIntact, results[0].Plan.Outcome)
	assert.Equal(t, StatePendingChoice, results[1].State)
	assert.Equal(t, StatePendingChoice, splitShip.State())
	assert.Equal(t, integrity.OutcomeTrimmed, results[2].Plan.Outcome)
}

func TestValidateFleetReportsLostShip(t *testing.T) {
	lost := NewShip("dave", chain(t))
	require.NoError(t, lost.Destroy(at(0, 0)))
	_, err := lost.Validate(context.Background())
	require.NoError(t, err)
	require.True(t, lost.Lost())

	_, err = ValidateFleet(context.Background(), []*Ship{NewShip("erin", chain(t)), lost})
	require.ErrorIs(t, err, ErrShipLost)
	assert.Contains(t, err.Error(), "dave")
}

func TestValidateFleetEmpty(t *testing.T) {
	results, err := ValidateFleet(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
