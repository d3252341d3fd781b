package service

import "errors"

var (
	// ErrHandleClosed is returned by every [Handle] method after Close.
	ErrHandleClosed = errors.New("vault handle is closed")

	// ErrNoOTP is returned when an entry has no one-time password secret.
	ErrNoOTP = errors.New("entry has no otp secret")

	// ErrStaleReload is returned by Reload when the backend was unreachable
	// and only the local cache could be read. The current copy stays.
	ErrStaleReload = errors.New("reload served from local cache")
)
