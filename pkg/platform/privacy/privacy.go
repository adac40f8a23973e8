// Package privacy contains helpers for keeping personal identifiers out of
// logs and storage. A full SIN never leaves the request path: records and
// log lines carry the masked form, correlation uses a keyed digest.
package privacy

import (
	"encoding/hex"
	"net"
	"strings"

	"golang.org/x/crypto/blake2b"

	"singate/pkg/sin"
)

// MaskSIN renders a SIN with the middle group blanked, e.g. "046-***-286".
// The first group alone already determines classification, and keeping the
// check group makes support correlation practical without exposing the
// number.
func MaskSIN(s sin.SIN) string {
	digits := s.Digits()
	var b strings.Builder
	b.Grow(11)
	for i := 0; i < 3; i++ {
		b.WriteByte('0' + digits[i])
	}
	b.WriteString("-***-")
	for i := 6; i < 9; i++ {
		b.WriteByte('0' + digits[i])
	}
	return b.String()
}

// DigestSIN computes a keyed BLAKE2b digest of the contiguous digit form.
// The same SIN always yields the same digest under the same key, so repeat
// lookups can be correlated in storage without the number itself. The key
// must be at most 64 bytes (blake2b's limit); an empty key degrades to an
// unkeyed hash and should only appear in tests.
func DigestSIN(s sin.SIN, key []byte) (string, error) {
	h, err := blake2b.New256(key)
	if err != nil {
		return "", err
	}
	h.Write([]byte(s.String()))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// AnonymizeIP truncates an IP address for logging: IPv4 keeps the /24,
// IPv6 keeps the /48. Unparseable input is dropped entirely.
func AnonymizeIP(ip string) string {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return ""
	}
	if v4 := parsed.To4(); v4 != nil {
		return net.IPv4(v4[0], v4[1], v4[2], 0).String() + "/24"
	}
	masked := parsed.Mask(net.CIDRMask(48, 128))
	return masked.String() + "/48"
}
