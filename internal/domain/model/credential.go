package model

import (
	"slices"
	"time"
)

// Credential holds a stored service credential key-value pair. Service
// identifies the platform ("youtube", "reddit"), and Key identifies the
// credential within that service ("client_id", "oauth_token").
type Credential struct {
	ID        int64
	Service   string
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Stored credential keys per service.
const (
	CredentialKeyClientSecret = "client_secret"
	CredentialKeyToken        = "token"
	CredentialKeyOAuthToken   = "oauth_token" // Cached result of the interactive flow.

	CredentialKeyClientID  = "client_id"
	CredentialKeyUserAgent = "user_agent"
	CredentialKeyUsername  = "username"
	CredentialKeyPassword  = "password"
)

// VideoCredentials are the inputs to the video platform authenticator.
type VideoCredentials struct {
	ClientSecretPath string // File holding the OAuth client-secret document.
	ClientSecretJSON string // Inline client-secret document; wins over ClientSecretPath.
	Token            string // Pre-provisioned token (JSON oauth2 token or bare refresh token).
}

// ForumCredentials are the inputs to the forum platform password grant.
type ForumCredentials struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	Username     string
	Password     string
}

// credentialKeys lists the keys each platform reads from the credential store.
var credentialKeys = map[Platform][]string{
	PlatformYouTube: {CredentialKeyClientSecret, CredentialKeyToken, CredentialKeyOAuthToken},
	PlatformReddit: {
		CredentialKeyClientID, CredentialKeyClientSecret, CredentialKeyUserAgent,
		CredentialKeyUsername, CredentialKeyPassword,
	},
}

// CredentialKeys returns the credential keys used by platform.
func CredentialKeys(platform Platform) []string {
	return slices.Clone(credentialKeys[platform])
}

// IsCredentialKey reports whether key is a credential used by platform.
func IsCredentialKey(platform Platform, key string) bool {
	return slices.Contains(credentialKeys[platform], key)
}
