// Package verifier judges an HTTP response against a test case's expectation.
// Verification is a linear sequence: status, then (if a body is expected)
// read, parse, normalize and compare. The result is an Outcome value; the
// package performs no output of its own so callers decide how to report it.
package verifier

import (
	"fmt"
	"io"
	"net/http"

	"apirunner/pkg/jsonvalue"
	"apirunner/pkg/testcase"
)

// Reasons reported on failure.
const (
	ReasonBodyMismatch = "Response body mismatch"
)

// Outcome is the verdict for one test case.
type Outcome struct {
	Passed bool
	// Reason is a single-line explanation, empty when Passed.
	Reason string
	// ParseFailed is set when the body was not valid JSON; RawBody then holds
	// the unparsed response text, which may be empty.
	ParseFailed bool
	RawBody     string
	// Mismatch is set when both bodies parsed but were not equal.
	Mismatch *Mismatch
}

// Mismatch carries the diagnostic data for a body comparison failure.
type Mismatch struct {
	// Diffs is empty unless both values are JSON objects.
	Diffs    []jsonvalue.KeyDiff
	Expected jsonvalue.Value
	Actual   jsonvalue.Value
}

func pass() Outcome { return Outcome{Passed: true} }

func fail(format string, args ...any) Outcome {
	return Outcome{Reason: fmt.Sprintf(format, args...)}
}

// Verify compares resp against exp and always closes the response body.
func Verify(resp *http.Response, exp testcase.Expected) Outcome {
	defer resp.Body.Close()

	if resp.StatusCode != int(exp.Status) {
		return fail("Status code mismatch: expected=%d, actual=%d", exp.Status, resp.StatusCode)
	}

	if exp.Response == nil {
		return pass()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail("Failed to get response: %v", err)
	}

	return CompareBody(body, *exp.Response)
}

// CompareBody parses body as JSON and compares it to the normalized expectation.
func CompareBody(body []byte, expected jsonvalue.Value) Outcome {
	actual, err := jsonvalue.Parse(body)
	if err != nil {
		out := fail("JSON parse error: %v", err)
		out.ParseFailed = true
		out.RawBody = string(body)
		return out
	}

	want := jsonvalue.Normalize(expected)
	if jsonvalue.Equal(actual, want) {
		return pass()
	}

	return Outcome{
		Reason: ReasonBodyMismatch,
		Mismatch: &Mismatch{
			Diffs:    jsonvalue.Diff(want, actual),
			Expected: want,
			Actual:   actual,
		},
	}
}
