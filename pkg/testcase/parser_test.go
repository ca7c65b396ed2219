package testcase

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"apirunner/pkg/jsonvalue"
)

const sequenceDoc = `
- case: health
  method: GET
  path: /health
  expected:
    status: 200
- case: create
  method: post
  path: /items
  headers:
    - key: Authorization
      value: Bearer t
    - key: X-Trace
      value: a
    - key: X-Trace
      value: b
  expected:
    status: 201
    response:
      id: 7
      tags: [x, y]
- case: encoded
  method: GET
  path: /encoded
  expected:
    status: 200
    response: '{"a": 1}'
- case: explicit null
  method: GET
  path: /null
  expected:
    status: 204
    response: null
`

func TestParseTestCasesSequence(t *testing.T) {
	cases, err := ParseTestCases([]byte(sequenceDoc))
	require.NoError(t, err)
	require.Len(t, cases, 4)

	health := cases[0]
	require.Equal(t, "health", health.Case)
	require.Equal(t, "/health", health.Path)
	require.Equal(t, uint16(200), health.Expected.Status)
	require.False(t, health.HasBodyAssertion())
	require.Empty(t, health.Headers)

	create := cases[1]
	require.Equal(t, "post", create.Method)
	require.Equal(t, []Header{
		{Key: "Authorization", Value: "Bearer t"},
		{Key: "X-Trace", Value: "a"},
		{Key: "X-Trace", Value: "b"},
	}, create.Headers)
	require.True(t, create.HasBodyAssertion())
	want, err := jsonvalue.Parse([]byte(`{"id":7,"tags":["x","y"]}`))
	require.NoError(t, err)
	require.True(t, jsonvalue.Equal(want, *create.Expected.Response))

	encoded := cases[2]
	require.NotNil(t, encoded.Expected.Response)
	s, ok := encoded.Expected.Response.AsString()
	require.True(t, ok, "string responses are kept as strings until verification")
	require.Equal(t, `{"a": 1}`, s)

	require.False(t, cases[3].HasBodyAssertion())
}

func TestParseTestCasesWrapper(t *testing.T) {
	doc := "tests:\n  - case: one\n    method: GET\n    path: /\n    expected:\n      status: 200\n"
	cases, err := ParseTestCases([]byte(doc))
	require.NoError(t, err)
	require.Len(t, cases, 1)
	require.Equal(t, "one", cases[0].Case)
}

func TestParseTestCasesJSON(t *testing.T) {
	doc := `[{"case":"json","method":"DELETE","path":"/x","expected":{"status":404,"response":{"error":"nope"}}}]`
	cases, err := ParseTestCases([]byte(doc))
	require.NoError(t, err)
	require.Len(t, cases, 1)
	require.True(t, cases[0].HasBodyAssertion())
}

func TestParseTestCasesEmpty(t *testing.T) {
	for _, doc := range []string{"", "[]", "tests: []", "tests:\n"} {
		cases, err := ParseTestCases([]byte(doc))
		require.NoError(t, err, "doc %q", doc)
		require.Empty(t, cases, "doc %q", doc)
	}
}

func TestParseTestCasesErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{name: "malformed yaml", doc: "- case: [unclosed", wantErr: "YAML parsing error"},
		{name: "scalar document", doc: "just text", wantErr: "YAML parsing error"},
		{name: "status out of range", doc: "- case: x\n  expected:\n    status: 70000\n", wantErr: "YAML parsing error"},
		{name: "status missing", doc: "- case: x\n  path: /\n", wantErr: "not a valid HTTP status code"},
		{name: "case name missing", doc: "- path: /\n  expected:\n    status: 200\n", wantErr: "case is required"},
		{name: "header key missing", doc: "- case: x\n  headers:\n    - value: v\n  expected:\n    status: 200\n", wantErr: "headers[0].key is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTestCases([]byte(tt.doc))
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadTestCasesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tests.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sequenceDoc), 0o600))

	cases, err := LoadTestCasesFromFile(path)
	require.NoError(t, err)
	require.Len(t, cases, 4)

	_, err = LoadTestCasesFromFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	cases, err = LoadTestCasesFromFile(empty)
	require.NoError(t, err)
	require.Empty(t, cases)
}
