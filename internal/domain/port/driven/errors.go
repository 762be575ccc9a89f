package driven

import "errors"

// ErrUnauthorized is wrapped by platform adapters when the vendor rejects the
// client's credentials, including a failed lazy token exchange or refresh.
var ErrUnauthorized = errors.New("platform rejected credentials")
