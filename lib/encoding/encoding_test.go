package encoding

import (
	"errors"
	"strings"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	codec := NewCodec([]byte("test-key"))

	snap := NewSnapshot("https://example.com/todos?done=1", "Todos")
	encoded, err := codec.Encode(snap)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := codec.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.URL != snap.URL {
		t.Errorf("URL = %q, want %q", got.URL, snap.URL)
	}
	if got.Title != snap.Title {
		t.Errorf("Title = %q, want %q", got.Title, snap.Title)
	}
	if got.PushedAt != snap.PushedAt {
		t.Errorf("PushedAt = %d, want %d", got.PushedAt, snap.PushedAt)
	}
}

func TestTamperDetection(t *testing.T) {
	codec := NewCodec([]byte("test-key"))
	encoded, err := codec.Encode(NewSnapshot("/a", ""))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Flip a character in the payload half.
	parts := strings.SplitN(encoded, ".", 2)
	payload := []byte(parts[0])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := string(payload) + "." + parts[1]

	if _, err := codec.Decode(tampered); !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("Decode(tampered) err = %v, want ErrSignatureInvalid", err)
	}
}

func TestWrongKey(t *testing.T) {
	encoded, err := NewCodec([]byte("key-one")).Encode(NewSnapshot("/a", ""))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := NewCodec([]byte("key-two")).Decode(encoded); !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("Decode with wrong key err = %v, want ErrSignatureInvalid", err)
	}
}

func TestInvalidFormat(t *testing.T) {
	codec := NewCodec([]byte("test-key"))
	for _, bad := range []string{"", "no-dot", "!!!.???", "abc."} {
		if _, err := codec.Decode(bad); !errors.Is(err, ErrInvalidFormat) && !errors.Is(err, ErrSignatureInvalid) {
			t.Errorf("Decode(%q) err = %v, want format or signature error", bad, err)
		}
	}
}
