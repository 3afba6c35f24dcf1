// Package encoding turns persisted component state into URL-safe tokens the
// client hands back on its next request.
package encoding

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Errors returned by Decode. Callers map them onto their own sentinels.
var (
	ErrInvalidFormat    = errors.New("encoding: invalid format")
	ErrSignatureInvalid = errors.New("encoding: signature verification failed")
	ErrDecryptFailed    = errors.New("encoding: decryption failed")
	ErrNotEncodable     = errors.New("encoding: type does not implement Encodable")
	ErrNotDecodable     = errors.New("encoding: type does not implement Decodable")
)

// Encoder handles encoding and decoding of component state.
// It supports two modes:
//   - Signed (default): base64 msgpack + HMAC signature - visible but tamper-proof
//   - Encrypted: AES-256-GCM - fully opaque
type Encoder struct {
	key []byte
	gcm cipher.AEAD
}

// NewEncoder creates a new encoder with the given key.
// Keys shorter than 32 bytes are stretched with SHA-256.
func NewEncoder(key []byte) (*Encoder, error) {
	if len(key) == 0 {
		return nil, errors.New("encoding: empty key")
	}
	if len(key) < 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}

	block, err := aes.NewCipher(key[:32])
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		key: key,
		gcm: gcm,
	}, nil
}

// Encodable is implemented by types that flatten themselves to a map.
type Encodable interface {
	EncodeState() map[string]any
}

// Decodable is implemented by types that rebuild themselves from a map.
type Decodable interface {
	DecodeState(map[string]any) error
}

// Encode serializes v and returns a token.
// If sensitive is true, the data is encrypted; otherwise it's signed.
func (e *Encoder) Encode(v any, sensitive bool) (string, error) {
	enc, ok := v.(Encodable)
	if !ok {
		return "", fmt.Errorf("%w: %T", ErrNotEncodable, v)
	}

	packed, err := msgpack.Marshal(enc.EncodeState())
	if err != nil {
		return "", err
	}

	if sensitive {
		return e.encrypt(packed)
	}
	return e.sign(packed)
}

// Decode verifies (or decrypts) a token and decodes it into v.
// Integers come back as int64 or uint64 and floats as float64.
func (e *Encoder) Decode(encoded string, sensitive bool, v any) error {
	dec, ok := v.(Decodable)
	if !ok {
		return fmt.Errorf("%w: %T", ErrNotDecodable, v)
	}

	var packed []byte
	var err error
	if sensitive {
		packed, err = e.decrypt(encoded)
	} else {
		packed, err = e.verify(encoded)
	}
	if err != nil {
		return err
	}

	d := msgpack.NewDecoder(bytes.NewReader(packed))
	d.UseLooseInterfaceDecoding(true)

	var data map[string]any
	if err := d.Decode(&data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	return dec.DecodeState(data)
}

// sign creates a signed (but visible) encoding: base64.signature
func (e *Encoder) sign(data []byte) (string, error) {
	b64 := base64.RawURLEncoding.EncodeToString(data)
	sig := base64.RawURLEncoding.EncodeToString(e.mac(data))
	return b64 + "." + sig, nil
}

// verify verifies and decodes a signed string
func (e *Encoder) verify(encoded string) ([]byte, error) {
	payload, signature, found := strings.Cut(encoded, ".")
	if !found {
		return nil, fmt.Errorf("%w: missing signature", ErrInvalidFormat)
	}

	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	sig, err := base64.RawURLEncoding.DecodeString(signature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	if !hmac.Equal(sig, e.mac(data)) {
		return nil, ErrSignatureInvalid
	}

	return data, nil
}

// mac returns the first 16 bytes (128 bits) of the HMAC-SHA256 of data.
func (e *Encoder) mac(data []byte) []byte {
	m := hmac.New(sha256.New, e.key)
	m.Write(data)
	return m.Sum(nil)[:16]
}

// encrypt creates an encrypted encoding using AES-256-GCM
func (e *Encoder) encrypt(data []byte) (string, error) {
	nonce := make([]byte, e.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	ciphertext := e.gcm.Seal(nonce, nonce, data, nil)
	return base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

// decrypt decodes and decrypts an encrypted string
func (e *Encoder) decrypt(encoded string) ([]byte, error) {
	ciphertext, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	if len(ciphertext) < e.gcm.NonceSize() {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrDecryptFailed)
	}

	nonce := ciphertext[:e.gcm.NonceSize()]
	ciphertext = ciphertext[e.gcm.NonceSize():]

	plain, err := e.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plain, nil
}
