package model

import "time"

const (
	// MinFlairTitleLength is the minimum title length, in characters, for flair submissions.
	MinFlairTitleLength = 15
	// DefaultFlairText is attached when a community offers no flair templates.
	DefaultFlairText = "Discussion"

	DefaultPostLimit = 5
	MinPostLimit     = 1
	MaxPostLimit     = 10
)

// PostSubmission is the input to a forum self-post submission.
type PostSubmission struct {
	Community string
	Title     string
	Body      string
	FlairID   string // Empty when no template is attached.
	FlairText string
}

// Post is a forum post as listed or created.
type Post struct {
	ID        string // Base-36 id without kind prefix.
	FullID    string // Id with the "t3_" kind prefix.
	Community string
	Title     string
	Body      string
	Author    string
	Score     int
	URL       string
	CreatedAt time.Time
}

// FlairTemplate is a link flair offered by a community.
type FlairTemplate struct {
	ID   string
	Text string
}

// ClampPostLimit bounds n to [MinPostLimit, MaxPostLimit].
func ClampPostLimit(n int) int {
	return max(MinPostLimit, min(n, MaxPostLimit))
}
