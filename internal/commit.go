package internal

import "time"

const shortHashLen = 7

// CommitRecord is the normalized view of a commit handed to callers.
type CommitRecord struct {
	SHA     string    `json:"sha"`
	Message string    `json:"message"`
	Author  string    `json:"author"`
	Date    time.Time `json:"dateUtc"`
}

type DiffSummary struct {
	Files   int `json:"files"`
	Added   int `json:"added"`
	Deleted int `json:"deleted"`
}

type MergeStatus string

const (
	MergeUpToDate    MergeStatus = "UpToDate"
	MergeFastForward MergeStatus = "FastForward"
)

func shortHash(h string) string {
	if len(h) <= shortHashLen {
		return h
	}
	return h[:shortHashLen]
}
