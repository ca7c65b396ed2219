// Package testcase also handles loading test cases from YAML files,
// parsing them into the defined Go structs, and performing basic validation.
package testcase

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTestCasesFromFile reads a test file from the given path and parses it.
// It accepts both a bare YAML sequence of test cases and a mapping with a
// top-level 'tests:' key.
func LoadTestCasesFromFile(filePath string) ([]TestCase, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read test file '%s': %w", filePath, err)
	}

	cases, err := ParseTestCases(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load test file '%s': %w", filepath.Base(filePath), err)
	}
	return cases, nil
}

// ParseTestCases decodes and validates test cases from YAML (or JSON) data.
// A document that declares no cases yields an empty list, not an error.
func ParseTestCases(data []byte) ([]TestCase, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("YAML parsing error: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	var cases []TestCase
	doc := root.Content[0]
	switch doc.Kind {
	case yaml.MappingNode:
		// Wrapper form with a top-level 'tests:' key
		var suite Suite
		if err := doc.Decode(&suite); err != nil {
			return nil, fmt.Errorf("YAML parsing error: %w", err)
		}
		cases = suite.Tests
	default:
		if err := doc.Decode(&cases); err != nil {
			return nil, fmt.Errorf("YAML parsing error: %w", err)
		}
	}

	if err := ValidateTestCases(cases); err != nil {
		return nil, err
	}
	return cases, nil
}

// ValidateTestCases performs structural validation. Unknown methods are not an
// error here: the dispatcher falls back to GET for them.
func ValidateTestCases(cases []TestCase) error {
	for i, tc := range cases {
		if tc.Case == "" {
			return fmt.Errorf("test case [%d]: case is required", i)
		}
		if tc.Expected.Status < 100 || tc.Expected.Status > 599 {
			return fmt.Errorf("test case [%d] %q: expected.status %d is not a valid HTTP status code",
				i, tc.Case, tc.Expected.Status)
		}
		for j, h := range tc.Headers {
			if h.Key == "" {
				return fmt.Errorf("test case [%d] %q: headers[%d].key is required", i, tc.Case, j)
			}
		}
	}
	return nil
}
