package v1

import "time"

// Commit is one entry of the repository history.
type Commit struct {
	SHA     string    `json:"sha"`
	Message string    `json:"message"`
	Author  string    `json:"author"`
	Date    time.Time `json:"dateUtc"`
}

// DiffSummary counts changed files and lines.
type DiffSummary struct {
	Files   int `json:"files"`
	Added   int `json:"added"`
	Deleted int `json:"deleted"`
}

// Pull results.
const (
	PullUpToDate    = "UpToDate"
	PullFastForward = "FastForward"
)
