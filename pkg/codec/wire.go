// Package codec implements the deterministic binary wire format every
// hashed or signed structure in blockify is serialized through:
// length-prefixed byte strings, fixed-width little-endian integers, no
// floating point, and ordered (never sorted) map encoding. Two callers
// serializing the same value, in the same field order, always produce
// the same bytes — that property is what makes record and block hashes
// reproducible across processes and languages.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrTruncated is returned when a Reader runs out of bytes mid-field.
var ErrTruncated = errors.New("codec: truncated input")

// Writer accumulates a deterministic byte stream.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the accumulated stream.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// PutBytes writes a uint32 little-endian length prefix followed by b.
func (w *Writer) PutBytes(b []byte) {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(b)))
	w.buf = append(w.buf, lenBuf[:]...)
	w.buf = append(w.buf, b...)
}

// PutString writes s as length-prefixed UTF-8 bytes.
func (w *Writer) PutString(s string) {
	w.PutBytes([]byte(s))
}

// PutUint64 writes a fixed-width little-endian uint64.
func (w *Writer) PutUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// PutInt64 writes a fixed-width little-endian int64.
func (w *Writer) PutInt64(v int64) {
	w.PutUint64(uint64(v))
}

// PutUint32 writes a fixed-width little-endian uint32, for small counts
// and enum-like tags where a full uint64 would be wasteful.
func (w *Writer) PutUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// PutOrderedMap writes a string->string map as a count followed by
// key/value pairs in the order given by keys. Callers are responsible
// for passing keys in insertion order; PutOrderedMap never sorts, since
// sorting would discard the ordering information the caller chose to
// preserve (spec requirement: no canonicalization-by-sorting).
func (w *Writer) PutOrderedMap(keys []string, m map[string]string) {
	w.PutUint32(uint32(len(keys)))
	for _, k := range keys {
		w.PutString(k)
		w.PutString(m[k])
	}
}

// Reader consumes a stream produced by Writer.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps b for sequential decoding.
func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Remaining reports how many bytes are left unread.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, ErrTruncated
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Bytes reads a length-prefixed byte string.
func (r *Reader) Bytes() ([]byte, error) {
	lenBuf, err := r.take(4)
	if err != nil {
		return nil, err
	}
	n := binary.LittleEndian.Uint32(lenBuf)
	return r.take(int(n))
}

// String reads a length-prefixed UTF-8 string.
func (r *Reader) String() (string, error) {
	b, err := r.Bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Uint64 reads a fixed-width little-endian uint64.
func (r *Reader) Uint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Int64 reads a fixed-width little-endian int64.
func (r *Reader) Int64() (int64, error) {
	v, err := r.Uint64()
	return int64(v), err
}

// Uint32 reads a fixed-width little-endian uint32.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// OrderedMap reads back a map plus the key order it was written in, so
// callers that need to re-emit it (e.g. Metadata.Encode) stay
// deterministic across a decode/encode round trip.
func (r *Reader) OrderedMap() (keys []string, m map[string]string, err error) {
	n, err := r.Uint32()
	if err != nil {
		return nil, nil, err
	}
	keys = make([]string, 0, n)
	m = make(map[string]string, n)
	for i := uint32(0); i < n; i++ {
		k, err := r.String()
		if err != nil {
			return nil, nil, err
		}
		v, err := r.String()
		if err != nil {
			return nil, nil, err
		}
		if _, dup := m[k]; dup {
			return nil, nil, fmt.Errorf("codec: duplicate map key %q", k)
		}
		keys = append(keys, k)
		m[k] = v
	}
	return keys, m, nil
}
