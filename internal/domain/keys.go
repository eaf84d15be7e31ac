package domain

import (
	"fmt"
	"strconv"
)

// Aggregate documents are keyed deterministically so the same logical
// record is always fetched and written under one id.

// SortedPair orders two user ids lexicographically
func SortedPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// PairKey returns the document id for the pair aggregate of two users.
// Either argument order yields the same key.
func PairKey(a, b string) string {
	first, second := SortedPair(a, b)
	return first + "_" + second
}

// RangeKey returns the document id for a declared range aggregate
func RangeKey(min, max int) string {
	return fmt.Sprintf("%d_%d", min, max)
}

// NumberKey returns the document id for a number aggregate
func NumberKey(n int) string {
	return strconv.Itoa(n)
}

// Selection documents are keyed "{challenge_id}{suffix}" so each participant
// has exactly one per challenge and a resubmission overwrites it.
const (
	SelectionSuffixFrom = "_from"
	SelectionSuffixTo   = "_to"
)
