package block

import "github.com/nisaacdz/blockify/pkg/digest"

// ComputeRoot computes the Merkle root of an ordered sequence of leaf
// digests: hashes are paired left-to-right in insertion order (never
// sorted), an odd leaf at any level is paired with itself rather than
// promoted unchanged (standard duplicate-last Merkle behavior), a
// single leaf is folded once more (root = H(h0)) so that a one-record
// block's root is never mistaken for a bare leaf hash, and an empty
// sequence yields the all-zero digest.
func ComputeRoot(leaves []digest.Digest) digest.Digest {
	switch len(leaves) {
	case 0:
		return digest.Zero
	case 1:
		return digest.Sum(leaves[0].Bytes())
	}

	level := make([]digest.Digest, len(leaves))
	copy(level, leaves)

	for len(level) > 1 {
		next := make([]digest.Digest, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}
			next = append(next, hashPair(left, right))
		}
		level = next
	}
	return level[0]
}

func hashPair(left, right digest.Digest) digest.Digest {
	buf := make([]byte, 0, digest.Size*2)
	buf = append(buf, left.Bytes()...)
	buf = append(buf, right.Bytes()...)
	return digest.Sum(buf)
}
