package demo

import "github.com/google/uuid"

//go:generate go run github.com/nisaacdz/blockify/cmd/blockify-gen -type Vote -out vote_blockify.go vote.go

// Vote is a second demo payload, deliberately left with no hand-written
// Marshal/Equal/Clone/Codec: vote_blockify.go is what cmd/blockify-gen
// produces for it from this struct definition alone.
type Vote struct {
	ID     uuid.UUID
	Choice int64
	Weight uint64
}

// NewVote returns a Vote with a freshly generated ID.
func NewVote(choice int64, weight uint64) Vote {
	return Vote{ID: uuid.New(), Choice: choice, Weight: weight}
}
