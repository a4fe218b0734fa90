package runner

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TestSuite defines a complete integration test scenario.
// It either carries Steps, or lists other Cases to run in sequence.
type TestSuite struct {
	Name  string     `json:"name"`
	Steps []TestStep `json:"steps,omitempty"`
	Cases []string   `json:"cases,omitempty"`
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// TestStep is one interaction with a game. Exactly one action should be set.
type TestStep struct {
	Name       string            `json:"name,omitempty"`
	Record     json.RawMessage   `json:"record,omitempty"`      // POST /log
	Feed       []json.RawMessage `json:"feed,omitempty"`        // POST /feed, then wait for the queue to drain
	OpenChoice *OpenChoice       `json:"open_choice,omitempty"` // PUT /choice
	Choose     *Choose           `json:"choose,omitempty"`      // POST /choice
	Expect     Expectations      `json:"expect"`
}

type OpenChoice struct {
	Claimants []string `json:"claimants"`
	Vassals   []string `json:"vassals"`
}

type Choose struct {
	Viewer []string `json:"viewer"`
	Target string   `json:"target"`
}

// Expectations defines what to check after a step executes
type Expectations struct {
	Status *int `json:"status,omitempty"` // HTTP status of the action

	// Log properties, read from GET /log after the action
	Entries         *int     `json:"entries,omitempty"`
	LastText        *string  `json:"last_text,omitempty"`
	LogContains     []string `json:"log_contains,omitempty"`
	LogNotContains  []string `json:"log_not_contains,omitempty"`
	LogRegex        string   `json:"log_regex,omitempty"`
	UnresolvedCount *int     `json:"unresolved_count,omitempty"`
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	TestName string
	StepName string
	Success  bool
	Error    error
	Duration time.Duration
	LastText string
}

// TestJob is one suite to run, after sequence expansion
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Job      TestJob
	Results  []TestResult
	Error    error
	Duration time.Duration
	GameID   uuid.UUID
}
