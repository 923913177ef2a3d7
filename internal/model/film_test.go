package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatKey(t *testing.T) {
	assert.Equal(t, "1:5", SeatKey(1, 5))
	assert.Equal(t, "12:30", SeatKey(12, 30))
}

func TestParseTaken(t *testing.T) {
	assert.Equal(t, Taken{}, ParseTaken(""))
	assert.Equal(t, Taken{"1:5", "2:3"}, ParseTaken("1:5,2:3"))
	assert.Equal(t, Taken{"1:5", "2:3"}, ParseTaken(" 1:5, ,2:3,"))
}

func TestTakenWithDoesNotAlias(t *testing.T) {
	base := make(Taken, 1, 4)
	base[0] = "1:1"
	a := base.With("1:2")
	b := base.With("1:3")
	assert.Equal(t, Taken{"1:1", "1:2"}, a)
	assert.Equal(t, Taken{"1:1", "1:3"}, b)
	assert.Equal(t, Taken{"1:1"}, base)
}

func TestTakenJSON(t *testing.T) {
	var s Session
	require.NoError(t, json.Unmarshal([]byte(`{"id":"s1","taken":"1:5,2:3"}`), &s))
	assert.Equal(t, Taken{"1:5", "2:3"}, s.Taken)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"s1","taken":["3:4"]}`), &s))
	assert.Equal(t, Taken{"3:4"}, s.Taken)

	out, err := json.Marshal(Session{ID: "s2"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"taken":[]`)
}

func TestFilmMarshalEmptyCollections(t *testing.T) {
	out, err := json.Marshal(Film{ID: "f1"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"tags":[]`)
	assert.Contains(t, string(out), `"schedule":[]`)
}

func TestFindSessionAndClone(t *testing.T) {
	f := Film{ID: "f1", Schedule: []Session{{ID: "s1", Taken: Taken{"1:1"}}}}
	require.Nil(t, f.FindSession("missing"))

	c := f.Clone()
	c.FindSession("s1").Taken = c.FindSession("s1").Taken.With("1:2")
	c.Schedule[0].Taken[0] = "9:9"

	assert.Equal(t, Taken{"1:1"}, f.Schedule[0].Taken)
}
