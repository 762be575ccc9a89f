// Package viewmodel defines presentation-ready structs for the HTML templates.
// View models decouple template rendering from domain model types.
package viewmodel

import "html/template"

// DashboardViewModel holds everything the dashboard page renders.
type DashboardViewModel struct {
	Title     string
	CSRFToken string

	Platforms []TabViewModel
	Actions   []TabViewModel

	Platform      string
	PlatformLabel string
	Action        string
	Connected     bool

	ConnectPath    string
	DisconnectPath string

	Form   FormViewModel
	Result *ResultViewModel
}

// TabViewModel is one entry of a selector (platform or action).
type TabViewModel struct {
	Value     string
	Label     string
	Path      string
	Selected  bool
	Connected bool
}

// FormViewModel is the per-action input form.
type FormViewModel struct {
	ActionPath  string
	SubmitLabel string
	Fields      []FieldViewModel
}

// FieldViewModel is one form input.
type FieldViewModel struct {
	Name        string
	Label       string
	Type        string // "text", "textarea" or "number".
	Value       string
	Placeholder string
	Required    bool
	Help        string
}

// ResultViewModel is the outcome of the last submitted action.
type ResultViewModel struct {
	Success    bool
	Message    string
	ErrorKind  string
	ErrorLabel string
	ResourceID string
	Video      *VideoViewModel
	Posts      []PostViewModel
}

// VideoViewModel is a fetched video with humanized statistics.
type VideoViewModel struct {
	ID              string
	Title           string
	DescriptionHTML template.HTML
	Tags            []string
	ChannelTitle    string
	Published       string
	PublishedAgo    string
	Views           string
	Likes           string
	Comments        string
	PrivacyStatus   string
	WatchURL        string
	Document        string
}

// PostViewModel is a forum post with its body rendered as sanitized HTML.
type PostViewModel struct {
	ID       string
	FullID   string
	Title    string
	Author   string
	Score    string
	URL      string
	BodyHTML template.HTML
	Age      string
}
