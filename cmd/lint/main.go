// Package main loads a test file and prints a summary of every test case
// without sending any requests.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"apirunner/pkg/dispatcher"
	"apirunner/pkg/testcase"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: lint <test_file>")
		os.Exit(1)
	}

	filePath := os.Args[1]
	fmt.Printf("Parsing file: %s\n\n", filePath)

	cases, err := testcase.LoadTestCasesFromFile(filePath)
	if err != nil {
		color.Red("Error parsing test file: %v\n", err)
		os.Exit(1)
	}

	color.Green("Successfully parsed %d test case(s)\n", len(cases))
	if warnings := printCases(os.Stdout, cases); warnings > 0 {
		color.Yellow("\n%d warning(s)\n", warnings)
	}
}

// printCases writes one summary block per test case and returns the number
// of warnings found.
func printCases(w io.Writer, cases []testcase.TestCase) int {
	warn := color.New(color.FgYellow).SprintFunc()
	warnings := 0

	for i, tc := range cases {
		method := dispatcher.ParseMethod(tc.Method)
		fmt.Fprintf(w, "[%d] %s\n", i+1, truncateString(tc.Case, 60))
		fmt.Fprintf(w, "    %s %s\n", method, truncateString(tc.Path, 60))
		if !dispatcher.IsKnownMethod(tc.Method) {
			fmt.Fprintf(w, "    %s\n", warn(fmt.Sprintf("unknown method %q, will be sent as GET", tc.Method)))
			warnings++
		}
		if len(tc.Headers) > 0 {
			fmt.Fprintf(w, "    Headers: %d\n", len(tc.Headers))
		}
		fmt.Fprintf(w, "    Expect: status %d", tc.Expected.Status)
		if tc.HasBodyAssertion() {
			fmt.Fprintf(w, ", body %s", truncateString(tc.Expected.Response.String(), 50))
		}
		fmt.Fprintln(w)
	}
	return warnings
}

// truncateString shortens a string to maxLen runes if it's too long
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
