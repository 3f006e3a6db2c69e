package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := New(bytes.Repeat([]byte{0x42}, 32), bytes.Repeat([]byte{0x24}, 12))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	c := newTestCodec(t)

	payloads := []interface{}{
		"a session token",
		map[string]int{"score": 3, "total": 5},
		[]string{"uno", "dos", "tres"},
	}

	for _, p := range payloads {
		enc, err := c.EncryptJSON(p)
		if err != nil {
			t.Fatalf("EncryptJSON(%v): %v", p, err)
		}

		var out interface{}
		if err := c.DecryptJSON(enc, &out); err != nil {
			t.Fatalf("DecryptJSON(%v): %v", p, err)
		}
	}
}

func TestEncryptedStringRoundTrip(t *testing.T) {
	c := newTestCodec(t)

	enc, err := c.EncryptJSON("token-123")
	if err != nil {
		t.Fatalf("EncryptJSON: %v", err)
	}

	var got string
	if err := c.DecryptJSON(enc, &got); err != nil {
		t.Fatalf("DecryptJSON: %v", err)
	}
	if got != "token-123" {
		t.Errorf("round trip = %q, want %q", got, "token-123")
	}
}

func TestCiphertextIsHex(t *testing.T) {
	c := newTestCodec(t)

	enc, err := c.EncryptJSON("x")
	if err != nil {
		t.Fatalf("EncryptJSON: %v", err)
	}
	if strings.Trim(enc, "0123456789abcdef") != "" {
		t.Errorf("ciphertext %q is not lowercase hex", enc)
	}
	if len(enc) <= 32 {
		t.Errorf("ciphertext %q has no room for a 16-byte tag", enc)
	}
}

func TestDecryptRejectsTamperedTag(t *testing.T) {
	c := newTestCodec(t)

	enc, err := c.EncryptJSON(map[string]string{"id": "sim-1"})
	if err != nil {
		t.Fatalf("EncryptJSON: %v", err)
	}

	// Flip every character of the tag portion in turn; each must fail.
	for i := len(enc) - 32; i < len(enc); i++ {
		flipped := byte('0')
		if enc[i] == '0' {
			flipped = '1'
		}
		tampered := enc[:i] + string(flipped) + enc[i+1:]

		var out map[string]string
		err := c.DecryptJSON(tampered, &out)
		if err == nil {
			t.Fatalf("tampering at %d went undetected", i)
		}
		if !errors.Is(err, ErrDecode) {
			t.Fatalf("tampering at %d: error %v does not wrap ErrDecode", i, err)
		}
	}
}

func TestDecryptRejectsMalformedInput(t *testing.T) {
	c := newTestCodec(t)

	cases := []string{
		"",
		"abc",                              // shorter than a tag
		strings.Repeat("0", 32),            // tag only, no ciphertext
		strings.Repeat("zz", 20),           // not hex
		strings.Repeat("0", 31) + "g" + "0", // odd hex in tag
	}

	for _, in := range cases {
		var out interface{}
		if err := c.DecryptJSON(in, &out); !errors.Is(err, ErrDecode) {
			t.Errorf("DecryptJSON(%q) = %v, want ErrDecode", in, err)
		}
	}
}

func TestNewRejectsBadSizes(t *testing.T) {
	if _, err := New(make([]byte, 16), make([]byte, 12)); err == nil {
		t.Error("short key accepted")
	}
	if _, err := New(make([]byte, 32), make([]byte, 16)); err == nil {
		t.Error("wrong nonce size accepted")
	}
}

func TestNewFromStrings(t *testing.T) {
	hexKey := strings.Repeat("ab", 32)
	hexNonce := strings.Repeat("cd", 12)

	fromHex, err := NewFromStrings(hexKey, hexNonce)
	if err != nil {
		t.Fatalf("hex key rejected: %v", err)
	}
	fromPass, err := NewFromStrings("correct horse battery staple", hexNonce)
	if err != nil {
		t.Fatalf("passphrase rejected: %v", err)
	}

	// The two key paths must actually differ.
	a, _ := fromHex.EncryptJSON("p")
	b, _ := fromPass.EncryptJSON("p")
	if a == b {
		t.Error("hex and passphrase keys produced identical ciphertext")
	}

	if _, err := NewFromStrings(hexKey, "not-hex"); err == nil {
		t.Error("invalid nonce hex accepted")
	}
}

func TestPassphraseKeyIsDeterministic(t *testing.T) {
	nonce := strings.Repeat("00", 12)
	c1, _ := NewFromStrings("frase secreta", nonce)
	c2, _ := NewFromStrings("frase secreta", nonce)

	enc, err := c1.EncryptJSON("dato")
	if err != nil {
		t.Fatalf("EncryptJSON: %v", err)
	}
	var out string
	if err := c2.DecryptJSON(enc, &out); err != nil {
		t.Fatalf("codec from same passphrase cannot decrypt: %v", err)
	}
}
