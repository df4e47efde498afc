package trellis

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action  string `yaml:"action" json:"action"`
	Input   string `yaml:"input,omitempty" json:"input,omitempty"`
	Frames  int    `yaml:"frames,omitempty" json:"frames,omitempty"`
	Message string `yaml:"message,omitempty" json:"message,omitempty"`
}

// inputScript is the top-level structure of an input script.
type inputScript struct {
	Steps []scriptStep `yaml:"steps" json:"steps"`
}

// TestRunner sequences injected input across frames for scripted runs and
// automated tests. Attach it to a Driver with SetTestRunner.
//
// Scripts are YAML (JSON is accepted too):
//
//	steps:
//	  - {action: press, input: right}
//	  - {action: wait, frames: 30}
//	  - {action: release, input: right}
//	  - {action: tap, input: jump}
//	  - {action: log, message: done}
type TestRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a script and returns a runner ready for
// Driver.SetTestRunner.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script inputScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "press", "release", "tap":
			if st.Input == "" {
				return nil, fmt.Errorf("parse test script: step %d: %s needs an input", i+1, st.Action)
			}
		case "wait", "log":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i+1, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called by the driver before input
// is updated.
func (r *TestRunner) step(in *Input) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if in.Pending() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	var err error
	switch st.Action {
	case "press":
		err = in.InjectPress(st.Input)
	case "release":
		err = in.InjectRelease(st.Input)
	case "tap":
		err = in.InjectTap(st.Input)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "log":
		logger.Info("test script", zap.String("message", st.Message), zap.Int("step", r.cursor))
	}
	if err != nil {
		logger.Warn("test script step skipped", zap.Int("step", r.cursor), zap.Error(err))
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && in.Pending() == 0 {
		r.done = true
	}
}
