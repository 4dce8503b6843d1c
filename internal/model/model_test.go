package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpotsLeftIsNotClamped(t *testing.T) {
	a := Activity{MaxParticipants: 1, Participants: []string{"a@x.com", "b@x.com", "c@x.com"}}
	assert.Equal(t, -2, a.SpotsLeft())

	a = Activity{MaxParticipants: 10, Participants: []string{"a@x.com"}}
	assert.Equal(t, 9, a.SpotsLeft())
}

func TestCatalogKeepsServerOrder(t *testing.T) {
	body := `{
		"Tennis Club": {"description": "t", "schedule": "s", "max_participants": 4, "participants": []},
		"Art Studio": {"description": "a", "schedule": "s", "max_participants": 2, "participants": ["x@y.com"]},
		"Chess Club": {"description": "c", "schedule": "s", "max_participants": 10, "participants": ["a@x.com"]}
	}`

	var c Catalog
	require.NoError(t, json.Unmarshal([]byte(body), &c))
	assert.Equal(t, []string{"Tennis Club", "Art Studio", "Chess Club"}, c.Names())
	assert.Equal(t, 3, c.Len())

	chess, ok := c.Get("Chess Club")
	require.True(t, ok)
	assert.Equal(t, []string{"a@x.com"}, chess.Participants)

	out, err := json.Marshal(&c)
	require.NoError(t, err)

	var again Catalog
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, c.Names(), again.Names())
}

func TestCatalogRejectsNonObject(t *testing.T) {
	var c Catalog
	require.Error(t, json.Unmarshal([]byte(`["Chess Club"]`), &c))
}

func TestCatalogEncodesEmptyParticipantsAsArray(t *testing.T) {
	c := NewCatalog()
	c.Set("Gym Class", Activity{Description: "d", Schedule: "s", MaxParticipants: 3})

	out, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Gym Class":{"description":"d","schedule":"s","max_participants":3,"participants":[]}}`, string(out))
}
