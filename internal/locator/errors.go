package locator

import "errors"

// ErrInvalidURL is returned by [Parse] when the vault URL is malformed, uses
// an unsupported scheme or lacks the segments its scheme requires.
var ErrInvalidURL = errors.New("invalid vault url")
