// Package testcase defines the Go data structures for declarative HTTP test
// cases as they appear in YAML test files. A test case names a request
// (method, path, headers) and the response it is expected to produce.
package testcase

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"apirunner/pkg/jsonvalue"
)

// Suite is the optional top-level wrapper for a test file that uses a
// 'tests:' key instead of a bare sequence.
type Suite struct {
	Tests []TestCase `yaml:"tests" json:"tests"`
}

// TestCase is one declarative request plus the response assertion applied to it.
type TestCase struct {
	Case     string   `yaml:"case" json:"case"`
	Method   string   `yaml:"method" json:"method"`
	Path     string   `yaml:"path" json:"path"`
	Headers  []Header `yaml:"headers,omitempty" json:"headers,omitempty"`
	Expected Expected `yaml:"expected" json:"expected"`
}

// Header is a single request header. Headers are kept as an ordered list so
// the same key may be sent more than once.
type Header struct {
	Key   string `yaml:"key" json:"key"`
	Value string `yaml:"value" json:"value"`
}

// Expected describes the response a test case asserts.
type Expected struct {
	Status uint16 `yaml:"status" json:"status"`
	// Response is nil when the test case makes no assertion about the body.
	// It may hold a string that itself contains serialized JSON; the verifier
	// unwraps it before comparing.
	Response *jsonvalue.Value `yaml:"-" json:"response,omitempty"`
}

// UnmarshalYAML decodes the expected block, converting the free-form response
// value into a jsonvalue.Value. An explicit null response is treated as absent.
func (e *Expected) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Status   uint16 `yaml:"status"`
		Response any    `yaml:"response"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	e.Status = raw.Status
	e.Response = nil
	if raw.Response == nil {
		return nil
	}
	v, err := jsonvalue.FromAny(raw.Response)
	if err != nil {
		return fmt.Errorf("line %d: expected.response: %w", node.Line, err)
	}
	e.Response = &v
	return nil
}

// HasBodyAssertion reports whether the test case compares the response body.
func (tc *TestCase) HasBodyAssertion() bool {
	return tc.Expected.Response != nil
}
