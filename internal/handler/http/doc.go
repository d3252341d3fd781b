// Package http implements the local API served by `key serve`.
//
// It wires a chi router over a shared [service.Handle]. Requests pass
// through trace id, access log and bearer token middleware before they
// reach the entry handlers, which translate sentinel errors from the vault,
// otp and store packages into HTTP status codes.
package http
