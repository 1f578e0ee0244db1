package smoke

import "os"

// ShowHelp prints usage information for the smoke tool.
func ShowHelp() {
	os.Stdout.WriteString(`Folio Smoke Tool
================

Posts feedback concurrently to a running site and verifies the listing,
the static pages and the guestbook echo.

Usage:
  go run ./cmd/smoke [options]

Options:
  -url string
        Base URL of the site (default "http://localhost:5000")
  -submissions int
        Number of feedback forms to post (default 100)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 10s)
  -output string
        Write the posted submissions to this JSON file
  -verbose
        Log every request
  -help
        Show this help message

Examples:
  go run ./cmd/smoke -submissions 500 -workers 16
  go run ./cmd/smoke -url http://localhost:8080 -verbose
`)
}
