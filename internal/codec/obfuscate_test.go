package codec

import (
	"strings"
	"testing"
)

func TestObfuscateRoundTrip(t *testing.T) {
	ids := []string{
		"1",
		"simulator-123",
		"550e8400-e29b-41d4-a716-446655440000",
		"un id con espacios y acentós",
		string([]byte{0xfb, 0xff, 0x01}), // base64 contains '-' and '_'
	}

	for _, id := range ids {
		tok := Obfuscate(id)
		got, ok := Deobfuscate(tok)
		if !ok {
			t.Errorf("Deobfuscate(Obfuscate(%q)) not ok, token %q", id, tok)
			continue
		}
		if got != id {
			t.Errorf("round trip %q -> %q", id, got)
		}
	}
}

func TestObfuscateFixedWidthPrefix(t *testing.T) {
	tok := Obfuscate("anything")

	if len(tok) < tsWidth+2 {
		t.Fatalf("token %q too short", tok)
	}
	if tok[tsWidth] != '-' {
		t.Errorf("token %q has no separator at the fixed offset", tok)
	}
	for _, r := range tok[:tsWidth] {
		if !strings.ContainsRune("0123456789abcdefghijklmnopqrstuvwxyz", r) {
			t.Errorf("prefix of %q contains non-base36 rune %q", tok, r)
		}
	}
}

func TestDeobfuscateSurvivesHyphenInPayload(t *testing.T) {
	// 0xfb 0xff encodes to urlsafe base64 starting with '-': a naive
	// split on the first '-' would cut the payload in half.
	id := string([]byte{0xfb, 0xff, 0x01, 0x02})
	tok := Obfuscate(id)

	if strings.Count(tok, "-") < 2 {
		t.Fatalf("test id did not produce a hyphen in the payload: %q", tok)
	}

	got, ok := Deobfuscate(tok)
	if !ok || got != id {
		t.Errorf("Deobfuscate(%q) = %q, %v; want %q, true", tok, got, ok, id)
	}
}

func TestDeobfuscateMalformed(t *testing.T) {
	cases := []string{
		"",
		"short",
		"00000000",      // prefix only, no separator or payload
		"00000000-",     // empty payload
		"0000000XdGVz",  // no separator at the fixed offset
		"ZZZ!ZZZZ-dGVz", // invalid base36 prefix
		"00000000-%%%%", // invalid base64 payload
	}

	for _, in := range cases {
		if got, ok := Deobfuscate(in); ok {
			t.Errorf("Deobfuscate(%q) = %q, ok; want rejection", in, got)
		}
	}
}
