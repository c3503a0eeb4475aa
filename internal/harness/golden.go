package harness

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"golang.org/x/text/unicode/norm"
)

// TraceSnapshot captures the complete trace for a scenario execution.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Pass         bool         `json:"pass"`
	Trace        []TraceEvent `json:"trace"`
}

// MarshalSnapshot renders a snapshot as indented JSON with sorted object
// keys, NFC-normalized strings, no HTML escaping and a trailing newline.
func MarshalSnapshot(s TraceSnapshot) ([]byte, error) {
	events := make([]TraceEvent, len(s.Trace))
	for i, ev := range s.Trace {
		events[i] = normalizeEvent(ev)
	}
	s.ScenarioName = norm.NFC.String(s.ScenarioName)
	s.Trace = events

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func normalizeEvent(ev TraceEvent) TraceEvent {
	if ev.Args != nil {
		args := make(map[string]any, len(ev.Args))
		for k, v := range ev.Args {
			args[k] = normalizeValue(v)
		}
		ev.Args = args
	}
	if ev.Result != nil {
		res := make(map[string]string, len(ev.Result))
		for k, v := range ev.Result {
			res[norm.NFC.String(k)] = norm.NFC.String(v)
		}
		ev.Result = res
	}
	ev.Error = norm.NFC.String(ev.Error)
	return ev
}

func normalizeValue(v any) any {
	switch v := v.(type) {
	case string:
		return norm.NFC.String(v)
	case []string:
		out := make([]string, len(v))
		for i, s := range v {
			out[i] = norm.NFC.String(s)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, s := range v {
			out[norm.NFC.String(k)] = norm.NFC.String(s)
		}
		return out
	default:
		return v
	}
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares the given result's trace against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	traceJSON, err := MarshalSnapshot(TraceSnapshot{
		ScenarioName: scenarioName,
		Pass:         result.Pass,
		Trace:        result.Trace,
	})
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)

	return nil
}
