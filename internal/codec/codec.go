// Package codec obscures session state held in client-side storage and
// identifiers placed in shareable URLs. Payloads go through AES-GCM with a
// deployment-fixed key and nonce; identifiers go through a reversible
// non-cryptographic encoding. Neither is transport security.
package codec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keySize   = 32
	nonceSize = 12
	tagSize   = 16
)

// ErrDecode marks any decrypt/decode failure. Callers recover locally by
// treating the value as absent; this error never crosses a UI boundary.
var ErrDecode = errors.New("codec: decode failed")

// kdfSalt is a fixed, versioned salt for passphrase-derived keys. Bump the
// suffix if the derivation parameters ever change.
var kdfSalt = []byte("examsim.kdf.v1")

const kdfIterations = 10_000

// Codec encrypts and decrypts JSON payloads with a fixed key and nonce.
type Codec struct {
	aead  cipher.AEAD
	nonce []byte
}

// New builds a codec from a 32-byte key and a 12-byte nonce.
func New(key, nonce []byte) (*Codec, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("codec: key must be %d bytes, got %d", keySize, len(key))
	}
	if len(nonce) != nonceSize {
		return nil, fmt.Errorf("codec: nonce must be %d bytes, got %d", nonceSize, len(nonce))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("codec: init cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("codec: init gcm: %w", err)
	}

	return &Codec{aead: aead, nonce: append([]byte(nil), nonce...)}, nil
}

// NewFromStrings builds a codec from deployment configuration strings.
// The key is either 64 hex chars (used raw) or an arbitrary passphrase
// (stretched with PBKDF2-SHA256). The nonce must be 24 hex chars.
func NewFromStrings(key, nonce string) (*Codec, error) {
	var keyBytes []byte
	if len(key) == 2*keySize {
		decoded, err := hex.DecodeString(key)
		if err == nil {
			keyBytes = decoded
		}
	}
	if keyBytes == nil {
		keyBytes = pbkdf2.Key([]byte(key), kdfSalt, kdfIterations, keySize, sha256.New)
	}

	nonceBytes, err := hex.DecodeString(nonce)
	if err != nil {
		return nil, fmt.Errorf("codec: nonce is not valid hex: %w", err)
	}

	return New(keyBytes, nonceBytes)
}

// EncryptJSON serializes v to JSON and encrypts it. The returned string is
// hex(ciphertext) followed by hex(16-byte auth tag), concatenated.
func (c *Codec) EncryptJSON(v interface{}) (string, error) {
	plain, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("codec: marshal payload: %w", err)
	}

	// Seal appends the tag after the ciphertext, which hex-encodes to
	// exactly the wire form: hex(ct) || hex(tag).
	sealed := c.aead.Seal(nil, c.nonce, plain, nil)
	return hex.EncodeToString(sealed), nil
}

// DecryptJSON reverses EncryptJSON into out. The trailing 32 hex characters
// are split off as the auth tag before decrypting the remainder. Any
// malformed input, failed authentication, or JSON re-parse failure yields
// an error wrapping ErrDecode; it never panics.
func (c *Codec) DecryptJSON(s string, out interface{}) error {
	if len(s) <= 2*tagSize {
		return fmt.Errorf("%w: missing auth tag", ErrDecode)
	}

	ctHex, tagHex := s[:len(s)-2*tagSize], s[len(s)-2*tagSize:]

	ct, err := hex.DecodeString(ctHex)
	if err != nil {
		return fmt.Errorf("%w: ciphertext is not valid hex", ErrDecode)
	}
	tag, err := hex.DecodeString(tagHex)
	if err != nil {
		return fmt.Errorf("%w: auth tag is not valid hex", ErrDecode)
	}

	plain, err := c.aead.Open(nil, c.nonce, append(ct, tag...), nil)
	if err != nil {
		return fmt.Errorf("%w: authentication failed", ErrDecode)
	}

	if err := json.Unmarshal(plain, out); err != nil {
		return fmt.Errorf("%w: payload is not valid JSON", ErrDecode)
	}
	return nil
}
