package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChoiceValueIsDeterministic(t *testing.T) {
	first, err := StatusPending.Value()
	require.NoError(t, err)
	second, err := StatusPending.Value()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, `{"id":1,"title":"Pending"}`, first)
}

func TestChoiceScanRoundTrip(t *testing.T) {
	serialized, err := StatusInProgress.Value()
	require.NoError(t, err)

	var fromString Choice
	require.NoError(t, fromString.Scan(serialized.(string)))
	assert.Equal(t, StatusInProgress, fromString)

	var fromBytes Choice
	require.NoError(t, fromBytes.Scan([]byte(serialized.(string))))
	assert.Equal(t, StatusInProgress, fromBytes)
}

func TestPricedChoiceRoundTrip(t *testing.T) {
	deadline, ok := FindDeadline(1)
	require.True(t, ok)
	assert.Equal(t, 20.0, deadline.Price)

	serialized, err := deadline.Value()
	require.NoError(t, err)

	var scanned PricedChoice
	require.NoError(t, scanned.Scan(serialized))
	assert.Equal(t, deadline, scanned)
}

func TestChoiceScanNilLeavesZeroValue(t *testing.T) {
	var c Choice
	require.NoError(t, c.Scan(nil))
	assert.Zero(t, c)
}

func TestFindChoice(t *testing.T) {
	spacing, ok := FindChoice(SpacingOptions, 2)
	require.True(t, ok)
	assert.Equal(t, "Single Spacing", spacing.Title)

	_, ok = FindChoice(SpacingOptions, 99)
	assert.False(t, ok)
}

func TestFindDeadlineUnknown(t *testing.T) {
	_, ok := FindDeadline(42)
	assert.False(t, ok)
}

func TestDeadlineOptionsCoverFullRange(t *testing.T) {
	require.Len(t, DeadlineOptions, 11)
	assert.Equal(t, "3 hours", DeadlineOptions[0].Title)
	assert.Equal(t, "30 days", DeadlineOptions[10].Title)
	assert.Equal(t, 0.0, DeadlineOptions[10].Price)
}

func TestUserCapabilities(t *testing.T) {
	u := User{IsCustomer: true, IsWriter: true}
	assert.Equal(t, []string{"customer", "writer"}, u.Capabilities())
	assert.True(t, u.HasCapability(CapabilityWriter))
	assert.False(t, u.HasCapability(CapabilityAdmin))
}
