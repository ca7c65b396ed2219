// Package reporter provides the presentation layer for test results: a small
// Reporter interface the executor calls, and a colored console implementation.
package reporter

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"apirunner/pkg/jsonvalue"
)

// Detail is the optional diagnostic attached to a failure.
type Detail struct {
	// ParseFailed marks a body that was not valid JSON; RawBody is its text.
	ParseFailed bool
	RawBody     string
	// Diffs lists per-key differences; empty for non-object bodies.
	Diffs []jsonvalue.KeyDiff
	// Expected and Actual are the complete compared values, set on body mismatch.
	Expected *jsonvalue.Value
	Actual   *jsonvalue.Value
}

// Summary counts verdicts for a finished run.
type Summary struct {
	Passed int
	Failed int
}

// Total is the number of cases that produced a verdict.
func (s Summary) Total() int { return s.Passed + s.Failed }

// Reporter receives verdicts in execution order.
type Reporter interface {
	ReportPass(name string)
	ReportFail(name, reason string, detail *Detail)
	// ReportSkip notes a case that was not sent, e.g. during a dry run.
	ReportSkip(name, note string)
	ReportSummary(s Summary)
}

// Console writes a line-oriented, color-coded report.
type Console struct {
	w io.Writer

	success   func(a ...interface{}) string
	failure   func(a ...interface{}) string
	highlight func(a ...interface{}) string
	warning   func(a ...interface{}) string
}

// NewConsole returns a Console writing to w. Colors follow fatih/color's
// terminal detection; noColor turns them off unconditionally.
func NewConsole(w io.Writer, noColor bool) *Console {
	newColor := func(attr color.Attribute) func(a ...interface{}) string {
		c := color.New(attr)
		if noColor {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return &Console{
		w:         w,
		success:   newColor(color.FgGreen),
		failure:   newColor(color.FgRed),
		highlight: newColor(color.FgCyan),
		warning:   newColor(color.FgYellow),
	}
}

// ReportPass prints a PASS line.
func (c *Console) ReportPass(name string) {
	fmt.Fprintf(c.w, "%s %s\n", c.success("PASS"), name)
}

// ReportFail prints a FAIL line followed by whatever diagnostics detail carries.
func (c *Console) ReportFail(name, reason string, detail *Detail) {
	fmt.Fprintf(c.w, "%s %s - %s\n", c.failure("FAIL"), name, reason)
	if detail == nil {
		return
	}

	if detail.ParseFailed {
		fmt.Fprintf(c.w, "Raw response: %s\n", detail.RawBody)
	}

	if len(detail.Diffs) > 0 {
		fmt.Fprintln(c.w, c.warning(">> DIFFERENCES:"))
		for _, d := range detail.Diffs {
			c.printKeyDiff(d)
		}
	}

	if detail.Expected != nil && detail.Actual != nil {
		fmt.Fprintf(c.w, "\n%s\n", c.warning(">> COMPLETE VALUES:"))
		fmt.Fprintf(c.w, "  Expected:\n%s\n", c.success(detail.Expected.Pretty()))
		fmt.Fprintf(c.w, "  Actual:\n%s\n", c.failure(detail.Actual.Pretty()))
	}
}

func (c *Console) printKeyDiff(d jsonvalue.KeyDiff) {
	expected := "<not expected>"
	if d.Expected != nil {
		expected = d.Expected.String()
	}
	actual := "<missing>"
	if d.Actual != nil {
		actual = d.Actual.String()
	}
	fmt.Fprintf(c.w, "  Key: %s\n", c.highlight(d.Key))
	fmt.Fprintf(c.w, "    Expected: %s\n", c.success(expected))
	fmt.Fprintf(c.w, "    Actual:   %s\n", c.failure(actual))
}

func (c *Console) ReportSkip(name, note string) {
	fmt.Fprintf(c.w, "%s %s - %s\n", c.warning("SKIP"), name, note)
}

func (c *Console) ReportSummary(s Summary) {
	failed := fmt.Sprintf("%d failed", s.Failed)
	if s.Failed > 0 {
		failed = c.failure(failed)
	}
	fmt.Fprintf(c.w, "\n%s, %s (%d total)\n", c.success(fmt.Sprintf("%d passed", s.Passed)), failed, s.Total())
}
