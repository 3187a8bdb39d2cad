package dialog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadGetters(t *testing.T) {
	raw, err := json.Marshal(Payload{"username": "admin", "msg_id": 42, "start": "2026-10-01"})
	require.NoError(t, err)

	var p Payload
	require.NoError(t, json.Unmarshal(raw, &p))

	s, ok := GetString(p, "username")
	assert.True(t, ok)
	assert.Equal(t, "admin", s)

	id, ok := GetInt64(p, "msg_id")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok = GetString(p, "msg_id")
	assert.False(t, ok)
	_, ok = GetInt64(p, "username")
	assert.False(t, ok)
	_, ok = GetInt64(Payload{"n": 7}, "n")
	assert.True(t, ok)
}
