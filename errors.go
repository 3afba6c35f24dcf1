package hxlive

import "errors"

// Sentinel errors for component operations.
var (
	ErrNotFound                = errors.New("hxlive: component not found")
	ErrUnknownProperty         = errors.New("hxlive: unknown property")
	ErrUnknownAction           = errors.New("hxlive: unknown action")
	ErrCallbackNotSerializable = errors.New("hxlive: callback cannot be serialized")
	ErrCallbackNotFound        = errors.New("hxlive: callback not registered")
	ErrNotCallback             = errors.New("hxlive: property does not hold a callback")
	ErrDecryptFailed           = errors.New("hxlive: state decryption failed")
	ErrSignatureInvalid        = errors.New("hxlive: state signature verification failed")
	ErrInvalidFormat           = errors.New("hxlive: invalid state format")
	ErrSchemaMismatch          = errors.New("hxlive: persisted state does not match schema")
	ErrNoRenderer              = errors.New("hxlive: component has no renderer")
	ErrInvalidConfig           = errors.New("hxlive: invalid configuration")
)

// IsNotFound checks if err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDecryptionError checks if err is a decryption or signature error.
func IsDecryptionError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) || errors.Is(err, ErrSignatureInvalid)
}

// IsTampered reports whether err means a client sent back state it was not
// given: a bad signature, failed decryption, a malformed token or a token
// minted for another component.
func IsTampered(err error) bool {
	return IsDecryptionError(err) || errors.Is(err, ErrInvalidFormat) || errors.Is(err, ErrSchemaMismatch)
}
