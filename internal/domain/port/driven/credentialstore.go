package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/socialpanel/internal/domain/model"
)

// ErrEncryptionKeyNotSet is returned by CredentialStore operations when
// SOCIALPANEL_SECRET_KEY has not been configured.
var ErrEncryptionKeyNotSet = errors.New("encryption key not configured: set SOCIALPANEL_SECRET_KEY")

// CredentialStore defines the driven port for encrypted credential persistence.
// The adapter layer is responsible for encryption/decryption; this interface
// operates on plaintext values at the domain boundary.
type CredentialStore interface {
	// Set stores or replaces the credential identified by service and key.
	Set(ctx context.Context, service, key, value string) error

	// Get retrieves a plaintext credential. Returns ("", nil) if none exists.
	Get(ctx context.Context, service, key string) (string, error)

	// GetAll returns every credential of a service keyed by credential key.
	GetAll(ctx context.Context, service string) (map[string]string, error)

	// List returns all stored credentials with decrypted values.
	List(ctx context.Context) ([]model.Credential, error)

	// Delete removes a credential. Deleting a missing credential is not an error.
	Delete(ctx context.Context, service, key string) error
}
