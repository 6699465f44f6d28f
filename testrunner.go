package diorama

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// scriptStep is one action of a scripted session.
type scriptStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	ToX    float64 `yaml:"to_x,omitempty"`
	ToY    float64 `yaml:"to_y,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
	Modal  string  `yaml:"modal,omitempty"`
}

type script struct {
	Steps []scriptStep `yaml:"steps"`
}

// TestRunner plays a scripted session: injected pointer input, waits,
// screenshots, and UI commands, one step per tick. Attach it with
// SetTestRunner.
type TestRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

var errNoSteps = errors.New("no steps")

// LoadTestScript parses a YAML test script. JSON is valid YAML, so JSON
// scripts load too.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var sc script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: %w", errNoSteps)
	}
	for i, st := range sc.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: sc.Steps}, nil
}

// LoadTestScriptFile reads and parses a test script from path.
func LoadTestScriptFile(path string) (*TestRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read test script: %w", err)
	}
	return LoadTestScript(data)
}

func (st *scriptStep) validate() error {
	switch st.Action {
	case "move", "click", "tap", "drag", "wait", "screenshot",
		"close_modal", "theme", "mute", "enter":
		return nil
	case "open_modal":
		if _, ok := parseModal(st.Modal); !ok {
			return fmt.Errorf("unknown modal %q", st.Modal)
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
}

func parseModal(name string) (ModalKind, bool) {
	for k := ModalWork; k <= ModalContact; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return ModalNone, false
}

// SetTestRunner attaches a TestRunner. Its step runs at the start of every
// Tick, before input is sampled.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether every step has run.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one tick.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	if len(s.injectQueue) > 0 {
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

	switch st.Action {
	case "move":
		s.InjectMove(st.X, st.Y)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "tap":
		s.InjectTap(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.X, st.Y, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	case "screenshot":
		s.Screenshot(st.Label)
	case "enter":
		_ = s.Enter()
	case "open_modal":
		kind, _ := parseModal(st.Modal)
		s.OpenModal(kind)
	case "close_modal":
		s.CloseModal()
	case "theme":
		s.ToggleTheme()
	case "mute":
		s.ToggleMute()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
