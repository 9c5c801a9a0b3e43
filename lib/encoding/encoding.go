// Package encoding serializes history snapshots for the SPA navigator.
//
// Each history entry the navigator pushes carries an opaque state blob
// describing the page it belongs to. The blob is msgpack for compactness and
// HMAC-signed so a restored entry that was tampered with (or produced by a
// different runtime) is rejected rather than trusted. The blob never leaves
// the page, so signing is sufficient; there is nothing secret to encrypt.
package encoding

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Sentinel errors for snapshot decoding.
var (
	ErrInvalidFormat    = errors.New("encoding: invalid snapshot format")
	ErrSignatureInvalid = errors.New("encoding: snapshot signature verification failed")
)

// Snapshot is the state stored in a browser history entry.
type Snapshot struct {
	URL      string `msgpack:"u"`
	Title    string `msgpack:"t,omitempty"`
	PushedAt int64  `msgpack:"a,omitempty"`
}

// NewSnapshot builds a snapshot for the given URL and title, stamped now.
func NewSnapshot(url, title string) Snapshot {
	return Snapshot{URL: url, Title: title, PushedAt: time.Now().Unix()}
}

// Codec encodes and decodes signed snapshots.
type Codec struct {
	key []byte
}

// NewCodec creates a codec from the given key. Keys shorter than 32 bytes
// are stretched through SHA-256.
func NewCodec(key []byte) *Codec {
	if len(key) < 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}
	return &Codec{key: key}
}

// Encode serializes and signs a snapshot. Output is base64(msgpack).base64(mac).
func (c *Codec) Encode(s Snapshot) (string, error) {
	packed, err := msgpack.Marshal(s)
	if err != nil {
		return "", err
	}
	b64 := base64.RawURLEncoding.EncodeToString(packed)
	mac := hmac.New(sha256.New, c.key)
	mac.Write(packed)
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil)[:16])
	return b64 + "." + sig, nil
}

// Decode verifies and deserializes a snapshot produced by Encode.
func (c *Codec) Decode(encoded string) (Snapshot, error) {
	parts := strings.SplitN(encoded, ".", 2)
	if len(parts) != 2 {
		return Snapshot{}, ErrInvalidFormat
	}

	packed, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return Snapshot{}, ErrInvalidFormat
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Snapshot{}, ErrInvalidFormat
	}

	mac := hmac.New(sha256.New, c.key)
	mac.Write(packed)
	expected := mac.Sum(nil)[:16]
	if !hmac.Equal(sig, expected) {
		return Snapshot{}, ErrSignatureInvalid
	}

	var s Snapshot
	if err := msgpack.Unmarshal(packed, &s); err != nil {
		return Snapshot{}, ErrInvalidFormat
	}
	return s, nil
}
