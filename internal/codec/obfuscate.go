package codec

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"
)

// tsWidth is the fixed width of the base36 timestamp prefix. 8 base36
// digits hold Unix-millisecond timestamps until 2059; decoding slices the
// prefix by width instead of splitting on '-', since the base64 payload
// may itself contain hyphens.
const tsWidth = 8

// Obfuscate encodes an identifier for use in a shareable URL:
// base36(unix millis) zero-padded to 8 chars, a '-', then URL-safe base64
// of the id with padding stripped. Reversible encoding, not encryption.
func Obfuscate(id string) string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	if len(ts) < tsWidth {
		ts = strings.Repeat("0", tsWidth-len(ts)) + ts
	}

	payload := base64.URLEncoding.EncodeToString([]byte(id))
	payload = strings.TrimRight(payload, "=")

	return ts + "-" + payload
}

// Deobfuscate reverses Obfuscate, restoring base64 padding before decoding.
// Returns ok=false on any malformed input; it never panics.
func Deobfuscate(token string) (string, bool) {
	if len(token) < tsWidth+2 || token[tsWidth] != '-' {
		return "", false
	}

	if _, err := strconv.ParseInt(token[:tsWidth], 36, 64); err != nil {
		return "", false
	}

	payload := token[tsWidth+1:]
	if m := len(payload) % 4; m != 0 {
		payload += strings.Repeat("=", 4-m)
	}

	id, err := base64.URLEncoding.DecodeString(payload)
	if err != nil {
		return "", false
	}
	return string(id), true
}
