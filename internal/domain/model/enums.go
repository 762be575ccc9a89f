package model

import "fmt"

// Platform identifies a third-party platform the panel operates on.
type Platform string

const (
	PlatformYouTube Platform = "youtube"
	PlatformReddit  Platform = "reddit"
)

// Platforms lists every supported platform in display order.
var Platforms = []Platform{PlatformYouTube, PlatformReddit}

// ParsePlatform converts a user-supplied platform name to a Platform.
func ParsePlatform(s string) (Platform, error) {
	switch p := Platform(s); p {
	case PlatformYouTube, PlatformReddit:
		return p, nil
	default:
		return "", fmt.Errorf("unknown platform %q", s)
	}
}

// Action identifies one of the four CRUD operations.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Actions lists every supported action in display order.
var Actions = []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}

// ParseAction converts a user-supplied action name to an Action.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete:
		return a, nil
	default:
		return "", fmt.Errorf("unknown action %q", s)
	}
}

// SubmitMode selects how forum posts are created.
type SubmitMode string

const (
	// SubmitModeFlair enforces a minimum title length and attaches a flair.
	SubmitModeFlair SubmitMode = "flair"
	// SubmitModePlain submits without flair or title checks.
	SubmitModePlain SubmitMode = "plain"
)

// AuthFlowKind selects how the video platform obtains its OAuth token.
type AuthFlowKind string

const (
	AuthFlowInteractive AuthFlowKind = "interactive" // Local redirect listener + browser.
	AuthFlowToken       AuthFlowKind = "token"       // Pre-provisioned token from configuration.
)
