// Package token hides a media URL behind a reversible base64 string.
//
// Tokens are not signed and do not expire. Anyone holding one can recover
// the URL.
package token

import (
	"encoding/base64"
	"strings"
)

// Encode returns the standard, padded base64 form of rawURL.
func Encode(rawURL string) string {
	return base64.StdEncoding.EncodeToString([]byte(rawURL))
}

// Decode reverses Encode. Malformed input is decoded best-effort:
// characters outside the base64 alphabet are skipped, '=' is dropped
// wherever it appears and a dangling final character is dropped. Padding in
// the middle does not end the token, so "YQ==YQ==" decodes as "YQYQ".
// It never fails; garbage in gives garbage out.
func Decode(tok string) string {
	if b, err := base64.StdEncoding.DecodeString(tok); err == nil {
		return string(b)
	}

	var sb strings.Builder
	for _, r := range tok {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '+', r == '/':
			sb.WriteRune(r)
		case r == '-':
			sb.WriteByte('+')
		case r == '_':
			sb.WriteByte('/')
		}
	}
	clean := sb.String()
	if len(clean)%4 == 1 {
		clean = clean[:len(clean)-1]
	}

	b, err := base64.RawStdEncoding.DecodeString(clean)
	if err != nil {
		return ""
	}
	return string(b)
}
