package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalSnapshot(t *testing.T) {
	data, err := MarshalSnapshot(TraceSnapshot{
		ScenarioName: "snap",
		Pass:         true,
		Trace: []TraceEvent{{
			Seq:    1,
			Op:     OpConvert,
			Args:   map[string]any{"to": "m", "from": "ft<"},
			Result: map[string]string{"value": "0.3048"},
		}},
	})
	require.NoError(t, err)

	want := `{
  "scenario_name": "snap",
  "pass": true,
  "trace": [
    {
      "seq": 1,
      "op": "convert",
      "args": {
        "from": "ft<",
        "to": "m"
      },
      "result": {
        "value": "0.3048"
      }
    }
  ]
}
`
	assert.Equal(t, want, string(data))
}

func TestMarshalSnapshot_NormalizesStrings(t *testing.T) {
	data, err := MarshalSnapshot(TraceSnapshot{
		ScenarioName: "cafe\u0301",
		Trace:        []TraceEvent{{Seq: 1, Op: OpFormat, Result: map[string]string{"text": "cafe\u0301"}}},
	})
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"caf\u00e9\"")
	assert.NotContains(t, string(data), "\u0301")
}
