package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSixID_RoundTrip(t *testing.T) {
	id := NewSixID()

	s := id.String()
	assert.Len(t, s, 10)

	parsed, err := ParseSixID(s)
	assert.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestSixID_ParseLeniency(t *testing.T) {
	id := NewSixID()
	s := id.String()

	withHyphen := s[:5] + "-" + s[5:]
	parsed, err := ParseSixID(withHyphen)
	assert.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestSixID_ParseErrors(t *testing.T) {
	_, err := ParseSixID("tooshort")
	assert.Error(t, err)

	_, err = ParseSixID("!!!!!!!!!!")
	assert.Error(t, err)
}

func TestSixID_ParseEmptyYieldsZero(t *testing.T) {
	parsed, err := ParseSixID("")
	assert.NoError(t, err)
	assert.True(t, parsed.IsZero())
}

func TestSixID_IsZero(t *testing.T) {
	assert.True(t, SixID{}.IsZero())
	assert.False(t, NewSixID().IsZero())
}

func TestSixID_JSONRoundTrip(t *testing.T) {
	id := NewSixID()

	data, err := json.Marshal(id)
	assert.NoError(t, err)

	var decoded SixID
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)
}

func TestSixID_Hook(t *testing.T) {
	fixed := SixID{1, 2, 3, 4, 5, 6}
	NewSixIDHook = func() (SixID, bool) { return fixed, true }
	defer func() { NewSixIDHook = nil }()

	assert.Equal(t, fixed, NewSixID())
}
