// Package report renders check results.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: Markdown output for pull requests and documentation
//
// Design decision: Report writing is kept apart from the report data
// structures in the model package, so a new output format never touches
// the checker or the aggregation code.
//
// Every writer renders both a single CheckReport and a Comparison of two
// stored runs, so the check and compare commands share one set of writers.
package report
