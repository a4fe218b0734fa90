package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// Runner executes integration tests against a running ravenlog API
type Runner struct {
	BaseURL           string
	Client            *http.Client
	Timeout           time.Duration
	Logger            func(format string, args ...interface{})
	ErrorHandlingMode ErrorHandlingMode
}

// NewRunner creates a new test runner
func NewRunner(baseURL string) *Runner {
	return &Runner{
		BaseURL:           strings.TrimSuffix(baseURL, "/"),
		Client:            &http.Client{Timeout: 30 * time.Second},
		Timeout:           30 * time.Second,
		Logger:            func(string, ...interface{}) {},
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a test suite from a JSON file
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	if err := json.Unmarshal(content, &suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
	}
	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}
	if !suite.IsSequence() {
		return []TestJob{{Name: suite.Name, Suite: suite, CaseFile: filename}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		subJobs, err := LoadTestSuiteWithExpansion(filepath.Join(casesDir, caseFile), casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}
		jobs = append(jobs, subJobs...)
	}
	return jobs, nil
}

// RunSuite creates a fresh game and runs every step against it.
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job:     TestJob{Name: suite.Name, Suite: suite},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	gameID, err := r.createGame(ctx)
	if err != nil {
		result.Error = fmt.Errorf("failed to create game: %w", err)
		result.Duration = time.Since(start)
		return result, result.Error
	}
	result.GameID = gameID

	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)
		stepResult := r.executeStep(ctx, gameID, step)
		stepResult.TestName = suite.Name
		result.Results = append(result.Results, stepResult)

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(suite.Steps), step.Name, stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, stepResult.Error)
			}
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
			continue
		}
		r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
	}

	result.Duration = time.Since(start)
	return result, result.Error
}

func (r *Runner) createGame(ctx context.Context) (uuid.UUID, error) {
	var game struct {
		ID uuid.UUID `json:"id"`
	}
	status, body, err := r.do(ctx, http.MethodPost, "/v1/games", nil)
	if err != nil {
		return uuid.Nil, err
	}
	if status != http.StatusCreated {
		return uuid.Nil, fmt.Errorf("create game returned %d: %s", status, body)
	}
	if err := json.Unmarshal(body, &game); err != nil {
		return uuid.Nil, fmt.Errorf("failed to decode created game: %w", err)
	}
	return game.ID, nil
}

// executeStep performs one action, then checks the log against the step's expectations.
func (r *Runner) executeStep(ctx context.Context, gameID uuid.UUID, step TestStep) TestResult {
	start := time.Now()
	result := TestResult{StepName: step.Name}
	fail := func(err error) TestResult {
		result.Error = err
		result.Duration = time.Since(start)
		return result
	}

	before, err := GetLog(ctx, r.Client, r.BaseURL, gameID)
	if err != nil {
		return fail(fmt.Errorf("failed to read log before step: %w", err))
	}

	game := "/v1/games/" + gameID.String()
	var status int
	var body []byte
	switch {
	case step.Record != nil:
		status, body, err = r.do(ctx, http.MethodPost, game+"/log", []byte(step.Record))
	case step.OpenChoice != nil:
		status, body, err = r.doJSON(ctx, http.MethodPut, game+"/choice", step.OpenChoice)
	case step.Choose != nil:
		status, body, err = r.doJSON(ctx, http.MethodPost, game+"/choice", step.Choose)
	case len(step.Feed) > 0:
		status, err = PostFeed(ctx, r.Client, r.BaseURL, gameID, step.Feed)
		if err == nil && status == http.StatusAccepted {
			err = PollForFeedDrain(ctx, r.Client, r.BaseURL, gameID, r.Timeout)
		}
	default:
		return fail(fmt.Errorf("step has no action"))
	}
	if err != nil {
		return fail(err)
	}

	if want := step.Expect.Status; want != nil && status != *want {
		return fail(fmt.Errorf("expected status %d, got %d: %s", *want, status, body))
	}

	after, err := GetLog(ctx, r.Client, r.BaseURL, gameID)
	if err != nil {
		return fail(fmt.Errorf("failed to read log after step: %w", err))
	}
	if len(after) > 0 {
		result.LastText = after[len(after)-1].Text
	}
	if err := checkExpectations(step.Expect, before, after); err != nil {
		return fail(fmt.Errorf("expectation failed: %w", err))
	}

	result.Success = true
	result.Duration = time.Since(start)
	return result
}

func (r *Runner) doJSON(ctx context.Context, method, path string, v any) (int, []byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return r.do(ctx, method, path, data)
}

func (r *Runner) do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, r.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to send %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

// checkExpectations validates the log after a step against what the step expects
func checkExpectations(exp Expectations, before, after []LogItem) error {
	if exp.Entries != nil && len(after)-len(before) != *exp.Entries {
		return fmt.Errorf("expected %d new entries, got %d", *exp.Entries, len(after)-len(before))
	}

	var lines []string
	unresolved := 0
	for _, it := range after[len(before):] {
		lines = append(lines, it.Text)
		if it.Error != "" {
			unresolved++
		}
	}
	text := strings.Join(lines, "\n")

	if exp.LastText != nil {
		if len(after) == 0 {
			return fmt.Errorf("expected last text %q, but the log is empty", *exp.LastText)
		}
		if got := after[len(after)-1].Text; got != *exp.LastText {
			return fmt.Errorf("expected last text %q, got %q", *exp.LastText, got)
		}
	}
	for _, want := range exp.LogContains {
		if !strings.Contains(text, want) {
			return fmt.Errorf("expected new entries to contain '%s', got:\n%s", want, text)
		}
	}
	for _, unwanted := range exp.LogNotContains {
		if strings.Contains(text, unwanted) {
			return fmt.Errorf("expected new entries to NOT contain '%s'", unwanted)
		}
	}
	if exp.LogRegex != "" {
		matched, err := regexp.MatchString(exp.LogRegex, text)
		if err != nil {
			return fmt.Errorf("invalid regex pattern: %w", err)
		}
		if !matched {
			return fmt.Errorf("new entries didn't match regex pattern: %s", exp.LogRegex)
		}
	}
	if exp.UnresolvedCount != nil && unresolved != *exp.UnresolvedCount {
		return fmt.Errorf("expected %d unresolved entries, got %d", *exp.UnresolvedCount, unresolved)
	}
	return nil
}
