package cipher

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matzehuels/efxvdb/pkg/errors"
)

// DuplicatePolicy selects how Build resolves a character that is listed
// more than once in the entry list.
type DuplicatePolicy int

const (
	// FirstWins keeps the earliest code for a character. This matches the
	// files produced by the vendor tooling and is the default.
	FirstWins DuplicatePolicy = iota
	// LastWins keeps the latest code for a character.
	LastWins
	// Strict rejects any duplicated character.
	Strict
)

var policyNames = map[DuplicatePolicy]string{
	FirstWins: "first",
	LastWins:  "last",
	Strict:    "strict",
}

func (p DuplicatePolicy) String() string {
	if s, ok := policyNames[p]; ok {
		return s
	}
	return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
}

// ParsePolicy parses "first", "last" or "strict". The empty string is FirstWins.
func ParsePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return FirstWins, nil
	case "last":
		return LastWins, nil
	case "strict":
		return Strict, nil
	}
	return FirstWins, errors.New(errors.ErrCodeInvalidConfig, "unknown cipher duplicate policy %q (want first, last or strict)", s)
}

// Duplicate describes a character listed more than once, with every code
// it was given in insertion order.
type Duplicate struct {
	Char  byte
	Codes []byte
}

// Table is an immutable character to byte substitution table.
type Table struct {
	policy     DuplicatePolicy
	codes      [256]byte
	mapped     [256]bool
	chars      []byte // mapped characters, ascending
	duplicates []Duplicate
}

// Build resolves entries into a Table using the given duplicate policy.
// Under Strict a duplicated character yields DUPLICATE_CIPHER_KEY.
func Build(entries []Entry, policy DuplicatePolicy) (*Table, error) {
	if _, ok := policyNames[policy]; !ok {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cipher duplicate policy %d", int(policy))
	}

	t := &Table{policy: policy}
	seen := make(map[byte][]byte)
	var order []byte
	for _, e := range entries {
		if _, ok := seen[e.Char]; !ok {
			order = append(order, e.Char)
		}
		seen[e.Char] = append(seen[e.Char], e.Code)
	}

	for _, c := range order {
		codes := seen[c]
		if len(codes) > 1 {
			t.duplicates = append(t.duplicates, Duplicate{Char: c, Codes: codes})
		}
		code := codes[0]
		if policy == LastWins {
			code = codes[len(codes)-1]
		}
		t.codes[c] = code
		t.mapped[c] = true
		t.chars = append(t.chars, c)
	}
	sort.Slice(t.chars, func(i, j int) bool { return t.chars[i] < t.chars[j] })
	sort.Slice(t.duplicates, func(i, j int) bool { return t.duplicates[i].Char < t.duplicates[j].Char })

	if policy == Strict && len(t.duplicates) > 0 {
		names := make([]string, len(t.duplicates))
		for i, d := range t.duplicates {
			names[i] = fmt.Sprintf("%q", d.Char)
		}
		return nil, errors.New(errors.ErrCodeDuplicateCipherKey,
			"%d characters listed more than once: %s", len(t.duplicates), strings.Join(names, ", "))
	}
	return t, nil
}

var defaultTables = func() map[DuplicatePolicy]*Table {
	m := make(map[DuplicatePolicy]*Table, 2)
	for _, p := range []DuplicatePolicy{FirstWins, LastWins} {
		t, err := Build(defaultEntries, p)
		if err != nil {
			panic(err)
		}
		m[p] = t
	}
	return m
}()

// Default returns the built-in table resolved with FirstWins.
func Default() *Table { return defaultTables[FirstWins] }

// ForPolicy returns the built-in table resolved with policy. Strict always
// fails because the built-in list carries duplicates.
func ForPolicy(policy DuplicatePolicy) (*Table, error) {
	if t, ok := defaultTables[policy]; ok {
		return t, nil
	}
	return Build(defaultEntries, policy)
}

// Policy reports the policy the table was built with.
func (t *Table) Policy() DuplicatePolicy { return t.policy }

// Len returns the number of mapped characters.
func (t *Table) Len() int { return len(t.chars) }

// Chars returns the mapped characters in ascending order.
func (t *Table) Chars() string { return string(t.chars) }

// Duplicates returns the characters that had more than one entry, ascending.
func (t *Table) Duplicates() []Duplicate {
	out := make([]Duplicate, len(t.duplicates))
	copy(out, t.duplicates)
	return out
}

// Has reports whether c has a code.
func (t *Table) Has(c byte) bool { return t.mapped[c] }

// EncodeChar returns the code for c or UNMAPPED_CHARACTER.
func (t *Table) EncodeChar(c byte) (byte, error) {
	if !t.mapped[c] {
		return 0, errors.New(errors.ErrCodeUnmappedCharacter, "no cipher code for character %q", c)
	}
	return t.codes[c], nil
}

// DecodeByte returns the smallest character whose code is b. The table is
// not injective, so this is the ascending-order first match.
func (t *Table) DecodeByte(b byte) (byte, bool) {
	for _, c := range t.chars {
		if t.codes[c] == b {
			return c, true
		}
	}
	return 0, false
}

// Collisions groups characters that share a code, keyed by code. Only
// codes used by two or more characters are returned.
func (t *Table) Collisions() map[byte][]byte {
	byCode := make(map[byte][]byte)
	for _, c := range t.chars {
		byCode[t.codes[c]] = append(byCode[t.codes[c]], c)
	}
	for code, chars := range byCode {
		if len(chars) < 2 {
			delete(byCode, code)
		}
	}
	return byCode
}
