// Package executor runs a list of test cases against a base URL.
// Cases run strictly in order, one request at a time: each is dispatched,
// its response verified, and the verdict handed to the reporter before the
// next case starts. Verification failures are recorded and the run continues;
// a request that cannot be sent at all aborts the run.
package executor

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"apirunner/pkg/dispatcher"
	"apirunner/pkg/reporter"
	"apirunner/pkg/testcase"
	"apirunner/pkg/verifier"
)

// RunResult represents the outcome of executing a list of test cases.
type RunResult struct {
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
	CaseResults []*CaseResult // in input order; shorter than the input if the run aborted
}

// CaseResult represents the outcome of a single test case.
type CaseResult struct {
	Name     string
	Method   string
	URL      string
	Passed   bool
	Skipped  bool // not sent (dry run)
	Reason   string
	Duration time.Duration
}

// Summary counts passed and failed cases. Skipped cases are in neither count.
func (r *RunResult) Summary() reporter.Summary {
	var s reporter.Summary
	for _, cr := range r.CaseResults {
		switch {
		case cr.Skipped:
		case cr.Passed:
			s.Passed++
		default:
			s.Failed++
		}
	}
	return s
}

// Sender sends the request for one test case.
type Sender interface {
	Send(ctx context.Context, baseURL string, tc *testcase.TestCase) (*http.Response, error)
}

// Options provides configuration options for the executor.
type Options struct {
	Sender   Sender            // defaults to dispatcher.New(nil, Logger)
	Reporter reporter.Reporter // required
	Logger   *slog.Logger      // defaults to slog.Default()
	DryRun   bool              // resolve requests but do not send them
}

// Run executes cases in order against baseURL. It returns the results gathered
// so far together with any fatal error.
func Run(ctx context.Context, baseURL string, cases []testcase.TestCase, opts Options) (*RunResult, error) {
	if opts.Reporter == nil {
		return nil, fmt.Errorf("executor: reporter is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sender := opts.Sender
	if sender == nil {
		sender = dispatcher.New(nil, logger)
	}

	result := &RunResult{
		StartTime:   time.Now(),
		CaseResults: make([]*CaseResult, 0, len(cases)),
	}
	logger.Info("Starting test run", slog.String("base_url", baseURL), slog.Int("cases", len(cases)))

	for i := range cases {
		tc := &cases[i]
		var (
			cr  *CaseResult
			err error
		)
		if opts.DryRun {
			cr, err = planCase(ctx, baseURL, tc, opts.Reporter)
		} else {
			cr, err = runCase(ctx, baseURL, tc, sender, opts.Reporter)
		}
		if err != nil {
			finalizeResult(result)
			logger.Error("Test run aborted", slog.String("case", tc.Case), slog.Any("error", err))
			return result, fmt.Errorf("test case %q: %w", tc.Case, err)
		}
		result.CaseResults = append(result.CaseResults, cr)
	}

	finalizeResult(result)
	s := result.Summary()
	opts.Reporter.ReportSummary(s)
	logger.Info("Test run finished",
		slog.Int("passed", s.Passed),
		slog.Int("failed", s.Failed),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}

// runCase sends one request and reports its verdict.
func runCase(ctx context.Context, baseURL string, tc *testcase.TestCase, sender Sender, rep reporter.Reporter) (*CaseResult, error) {
	cr := &CaseResult{
		Name:   tc.Case,
		Method: dispatcher.ParseMethod(tc.Method),
		URL:    baseURL + tc.Path,
	}
	start := time.Now()

	resp, err := sender.Send(ctx, baseURL, tc)
	if err != nil {
		return nil, err
	}
	outcome := verifier.Verify(resp, tc.Expected)
	cr.Duration = time.Since(start)

	cr.Passed = outcome.Passed
	cr.Reason = outcome.Reason
	if outcome.Passed {
		rep.ReportPass(tc.Case)
	} else {
		rep.ReportFail(tc.Case, outcome.Reason, detailFor(outcome))
	}
	return cr, nil
}

// planCase resolves the request for a dry run without sending it.
func planCase(ctx context.Context, baseURL string, tc *testcase.TestCase, rep reporter.Reporter) (*CaseResult, error) {
	req, err := dispatcher.BuildRequest(ctx, baseURL, tc)
	if err != nil {
		return nil, err
	}
	rep.ReportSkip(tc.Case, fmt.Sprintf("%s %s", req.Method, req.URL.String()))
	return &CaseResult{
		Name:    tc.Case,
		Method:  req.Method,
		URL:     req.URL.String(),
		Skipped: true,
	}, nil
}

func detailFor(o verifier.Outcome) *reporter.Detail {
	if !o.ParseFailed && o.Mismatch == nil {
		return nil
	}
	d := &reporter.Detail{ParseFailed: o.ParseFailed, RawBody: o.RawBody}
	if m := o.Mismatch; m != nil {
		d.Diffs = m.Diffs
		d.Expected = &m.Expected
		d.Actual = &m.Actual
	}
	return d
}

func finalizeResult(result *RunResult) {
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
}
