// Package demo provides a minimal payload type, Note, used by the test
// suites of pkg/record, pkg/block and pkg/chain, and by cmd/blockifyctl
// as a stand-in for whatever real payload a caller of the library would
// define. blockify ships no payload types of its own — Note exists only
// to exercise the generic surface.
package demo

import (
	"github.com/google/uuid"

	"github.com/nisaacdz/blockify/pkg/codec"
)

// Note is a tiny text payload: an author-supplied ID and a body string.
type Note struct {
	ID   uuid.UUID
	Body string
}

// NewNote returns a Note with a freshly generated ID.
func NewNote(body string) Note {
	return Note{ID: uuid.New(), Body: body}
}

// Marshal implements record.Payload[Note].
func (n Note) Marshal() ([]byte, error) {
	w := codec.NewWriter()
	idBytes, err := n.ID.MarshalBinary()
	if err != nil {
		return nil, err
	}
	w.PutBytes(idBytes)
	w.PutString(n.Body)
	return w.Bytes(), nil
}

// Equal implements record.Payload[Note].
func (n Note) Equal(other Note) bool {
	return n.ID == other.ID && n.Body == other.Body
}

// Clone implements record.Payload[Note].
func (n Note) Clone() Note {
	return Note{ID: n.ID, Body: n.Body}
}

// Codec implements record.Codec[Note]; a
// generated equivalent is what cmd/blockify-gen would emit for a
// caller's own payload type (see pkg/genrecord).
type Codec struct{}

// Marshal implements record.Codec[Note].
func (Codec) Marshal(n Note) ([]byte, error) {
	return n.Marshal()
}

// Unmarshal implements record.Codec[Note].
func (Codec) Unmarshal(data []byte) (Note, error) {
	r := codec.NewReader(data)
	idBytes, err := r.Bytes()
	if err != nil {
		return Note{}, err
	}
	var id uuid.UUID
	if err := id.UnmarshalBinary(idBytes); err != nil {
		return Note{}, err
	}
	body, err := r.String()
	if err != nil {
		return Note{}, err
	}
	return Note{ID: id, Body: body}, nil
}
