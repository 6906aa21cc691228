// Package cipher implements the byte substitution used for every
// identifier stored in a VDB file.
//
// A [Table] maps each allowed identifier character to one byte. The
// built-in entry list names some characters twice; [Build] resolves them
// with a [DuplicatePolicy]. [FirstWins] is the default and reproduces the
// bytes written by the vendor tooling.
//
// Identifiers are stored as a length byte followed by the encoded
// characters in reverse order:
//
//	t := cipher.Default()
//	b, _ := t.EncodeIdentifier("add") // 03 4a 4a 41
//
// The mapping is not injective ('3' and 'g' share 0x44), so
// [Table.DecodeByte] returns the smallest matching character and decoding
// is only useful for display.
package cipher
