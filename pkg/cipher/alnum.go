package cipher

import "github.com/matzehuels/efxvdb/pkg/errors"

// Alphabet is the alphanumeric table used for file identifiers: digits,
// then upper case, then lower case.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// AlphabetSize is len(Alphabet).
const AlphabetSize = len(Alphabet)

// Alnum maps i in [0, AlphabetSize) to its alphanumeric character.
func Alnum(i int) (byte, error) {
	if i < 0 || i >= AlphabetSize {
		return 0, errors.New(errors.ErrCodeInvalidInput, "alphanumeric index %d out of range [0,%d)", i, AlphabetSize)
	}
	return Alphabet[i], nil
}
