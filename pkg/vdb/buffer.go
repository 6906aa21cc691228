package vdb

import "encoding/binary"

// Buffer is an append-only byte sink. Sections are built into their own
// Buffer and concatenated by the Writer once they succeed.
type Buffer struct {
	Bytes []byte
}

func (b *Buffer) AppendByte(v byte) {
	b.Bytes = append(b.Bytes, v)
}

func (b *Buffer) WriteBytes(v []byte) {
	b.Bytes = append(b.Bytes, v...)
}

// WriteReversed writes v back to front.
func (b *Buffer) WriteReversed(v []byte) {
	for i := len(v) - 1; i >= 0; i-- {
		b.Bytes = append(b.Bytes, v[i])
	}
}

// WriteZeros writes n zero bytes.
func (b *Buffer) WriteZeros(n int) {
	for i := 0; i < n; i++ {
		b.Bytes = append(b.Bytes, 0)
	}
}

// WriteU16 writes v little-endian.
func (b *Buffer) WriteU16(v uint16) {
	b.Bytes = binary.LittleEndian.AppendUint16(b.Bytes, v)
}

// WriteDirection writes a dirBlockSize block whose first byte is code.
func (b *Buffer) WriteDirection(code byte) {
	b.AppendByte(code)
	b.WriteZeros(dirBlockSize - 1)
}

func (b *Buffer) Len() int { return len(b.Bytes) }
