package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateTime_AcceptsSeveralFormats(t *testing.T) {
	cases := []string{
		`"2026-03-01T10:30:00Z"`,
		`"2026-03-01T10:30:00+05:00"`,
		`"2026-03-01T10:30:00"`,
		`"2026-03-01 10:30:00"`,
		`"2026-03-01"`,
	}
	for _, raw := range cases {
		var d DateTime
		require.NoError(t, json.Unmarshal([]byte(raw), &d), "input %s", raw)
		assert.Equal(t, 2026, d.Year(), "input %s", raw)
		assert.Equal(t, time.March, d.Month(), "input %s", raw)
	}
}

func TestDateTime_RejectsGarbage(t *testing.T) {
	var d DateTime
	assert.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`123`), &d))
}

func TestDateTime_MarshalsRFC3339(t *testing.T) {
	var d DateTime
	require.NoError(t, json.Unmarshal([]byte(`"2026-03-01 10:30:00"`), &d))

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-01T10:30:00Z"`, string(out))
}

func TestTaskPayload_OmitsAbsentFields(t *testing.T) {
	var p TaskPayload
	require.NoError(t, json.Unmarshal([]byte(`{"title": "x", "due_date": "2026-03-01"}`), &p))

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title": "x", "due_date": "2026-03-01T00:00:00Z"}`, string(out))
}
