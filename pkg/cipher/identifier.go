package cipher

import (
	"strings"

	"github.com/matzehuels/efxvdb/pkg/errors"
)

// MaxIdentifierLength is the longest identifier whose length fits the
// single length byte.
const MaxIdentifierLength = 255

// EncodeIdentifier returns the on-disk form of name: one length byte
// followed by the encoded characters in reverse order.
//
// A name longer than MaxIdentifierLength has its length byte truncated
// modulo 256 while every character is still written. Use
// EncodeIdentifierStrict to reject such names instead.
func (t *Table) EncodeIdentifier(name string) ([]byte, error) {
	return t.AppendIdentifier(make([]byte, 0, len(name)+1), name)
}

// EncodeIdentifierStrict is EncodeIdentifier but fails with
// IDENTIFIER_TOO_LONG for names over MaxIdentifierLength.
func (t *Table) EncodeIdentifierStrict(name string) ([]byte, error) {
	if len(name) > MaxIdentifierLength {
		return nil, errors.New(errors.ErrCodeIdentifierTooLong,
			"identifier %.32q... is %d bytes, limit is %d", name, len(name), MaxIdentifierLength)
	}
	return t.EncodeIdentifier(name)
}

// AppendIdentifier appends the encoded form of name to dst. On error dst
// is returned unchanged so no partial identifier is ever written.
func (t *Table) AppendIdentifier(dst []byte, name string) ([]byte, error) {
	for i := 0; i < len(name); i++ {
		if !t.mapped[name[i]] {
			return dst, errors.New(errors.ErrCodeUnmappedCharacter,
				"no cipher code for character %q in identifier %q", name[i], name)
		}
	}
	dst = append(dst, byte(len(name)))
	for i := len(name) - 1; i >= 0; i-- {
		dst = append(dst, t.codes[name[i]])
	}
	return dst, nil
}

// DecodeIdentifier reverses EncodeIdentifier for display. Each code is
// decoded with DecodeByte, so the result is one preimage rather than
// necessarily the original name; unknown codes render as '?'. It returns
// the decoded name and the number of bytes consumed.
func (t *Table) DecodeIdentifier(b []byte) (string, int, error) {
	if len(b) == 0 {
		return "", 0, errors.New(errors.ErrCodeInvalidFormat, "missing identifier length byte")
	}
	n := int(b[0])
	if len(b) < n+1 {
		return "", 0, errors.New(errors.ErrCodeInvalidFormat, "identifier needs %d bytes, have %d", n, len(b)-1)
	}
	var sb strings.Builder
	sb.Grow(n)
	for i := n; i >= 1; i-- {
		c, ok := t.DecodeByte(b[i])
		if !ok {
			c = '?'
		}
		sb.WriteByte(c)
	}
	return sb.String(), n + 1, nil
}

// Unmapped returns the distinct characters of name with no code, in
// first-seen order.
func (t *Table) Unmapped(name string) []byte {
	var out []byte
	var seen [256]bool
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !t.mapped[c] && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}
