package hive

import (
	"encoding/json"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// testStep is one action of a test script. Which fields matter depends on
// Action.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Key    string  `json:"key,omitempty"`

	key ebiten.Key
}

// check validates the step and resolves its key name.
func (st *testStep) check() error {
	switch st.Action {
	case "click", "move", "path", "blur", "wait", "screenshot":
		return nil
	case "key":
		if err := st.key.UnmarshalText([]byte(st.Key)); err != nil {
			return fmt.Errorf("unknown key %q", st.Key)
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
}

// apply queues the step's input on c and returns how many extra frames to
// hold before the next step.
func (st *testStep) apply(c *Canvas) int {
	switch st.Action {
	case "click":
		c.InjectClick(st.X, st.Y)
	case "move":
		c.InjectMove(st.X, st.Y)
	case "path":
		c.InjectPath(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "key":
		c.InjectKey(st.key)
	case "blur":
		c.InjectBlur()
	case "screenshot":
		c.Screenshot(st.Label)
	case "wait":
		// The frame that reads the step counts as the first.
		return max(st.Frames-1, 0)
	}
	return 0
}

// TestRunner replays a scripted sequence of input events and screenshots,
// one step per frame once earlier input has drained. Attach it to a Canvas
// with SetTestRunner.
type TestRunner struct {
	steps []testStep
	next  int
	hold  int
	done  bool
}

// LoadTestScript parses a JSON document of the form
//
//	{"steps": [{"action": "click", "x": 10, "y": 20}, ...]}
//
// Supported actions are click, move, path, key, blur, wait and screenshot.
// Every step is validated up front.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script struct {
		Steps []testStep `json:"steps"`
	}
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("hive: parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("hive: parse test script: no steps")
	}
	for i := range script.Steps {
		if err := script.Steps[i].check(); err != nil {
			return nil, fmt.Errorf("hive: parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches runner; Tick steps it before anything else.
func (c *Canvas) SetTestRunner(runner *TestRunner) {
	c.testRunner = runner
}

// Done reports whether every step has run and its input has been consumed.
func (r *TestRunner) Done() bool {
	return r.done
}

func (r *TestRunner) step(c *Canvas) {
	switch {
	case r.done, len(c.injectQueue) > 0:
		return
	case r.hold > 0:
		r.hold--
		return
	case r.next == len(r.steps):
		r.done = true
		return
	}
	r.hold = r.steps[r.next].apply(c)
	r.next++
	if r.next == len(r.steps) && r.hold == 0 && len(c.injectQueue) == 0 {
		r.done = true
	}
}
