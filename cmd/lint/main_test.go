package main

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"apirunner/pkg/testcase"
)

func TestPrintCases(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	cases, err := testcase.ParseTestCases([]byte(`
- case: health
  method: get
  path: /health
  expected:
    status: 200
- case: patch item
  method: PATCH
  path: /items/1
  headers:
    - key: Authorization
      value: Bearer t
  expected:
    status: 200
    response:
      ok: true
`))
	require.NoError(t, err)

	var buf bytes.Buffer
	warnings := printCases(&buf, cases)
	require.Equal(t, 1, warnings)
	require.Equal(t, `[1] health
    GET /health
    Expect: status 200
[2] patch item
    GET /items/1
    unknown method "PATCH", will be sent as GET
    Headers: 1
    Expect: status 200, body {"ok":true}
`, buf.String())
}

func TestTruncateString(t *testing.T) {
	require.Equal(t, "short", truncateString("short", 10))
	require.Equal(t, "abcdefg...", truncateString("abcdefghijklmnop", 10))
	require.Equal(t, "héllo", truncateString("héllo", 5))
	require.Equal(t, "日本語テスト...", truncateString("日本語テストケース名前", 9))
}
