// Package smoke drives a running site end to end: it posts feedback
// concurrently, checks the listing, the static pages and the guestbook echo.
package smoke

import "time"

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL     string        // Base URL of the site
	Submissions int           // Number of feedback forms to post
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	OutputFile  string        // Optional JSON report of the posted submissions
	Verbose     bool          // Log every request
}

// Submission is one posted feedback form.
type Submission struct {
	Name    string `json:"name"`
	Comment string `json:"comment"`
}

// Line is how the listing renders the submission.
func (s Submission) Line() string {
	return s.Name + " (" + s.Comment + ")"
}

// Stats holds run statistics.
type Stats struct {
	RunID        string
	Generated    int
	Submitted    int
	Successful   int
	Failed       int
	Listed       int
	PagesChecked int
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
}
