package codec

import "errors"

var (
	// ErrKeyDerivation is returned when credentials cannot be turned into a key.
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrDecode is returned for wrong credentials or corrupt vault bytes.
	ErrDecode = errors.New("decode vault")

	// ErrEncode is returned when a vault cannot be serialised.
	ErrEncode = errors.New("encode vault")
)
