// Package cssl implements a cache-sensitive skip list: an immutable,
// bulk-built ordered index over a sorted array of uint32 keys.
//
// A CSSL is built once from a slice of keys via Build and is read-only
// from then on. It replaces the pointer chasing of a classical skip
// list with a linearized, block-friendly representation: a hierarchy
// of equally spaced "fast lanes" backed by a single contiguous buffer,
// plus a side array of proxy nodes holding the bottom-level keys that
// lie between two fast-lane positions.
package cssl

import "math"

const (
	// MaxSkip bounds the geometric stride between adjacent lane
	// densities. Larger skips shrink the lane hierarchy but widen the
	// per-level linear scan during descent.
	MaxSkip = 5

	// MinFastLaneSize is the multiple every lane's padded length must
	// satisfy. Padding lets descent and range scans read past a
	// lane's logical tail without a bounds check.
	MinFastLaneSize = 16

	// sentinel is appended as padding; it compares greater than any
	// real key below math.MaxUint32, so a binary search or tail scan
	// never mistakes it for a match. Find resolves a math.MaxUint32
	// key from the sorted keys without consulting the lanes.
	sentinel = math.MaxUint32
)

// proxy holds the block of consecutive sorted keys that sit between
// two adjacent level-0 fast-lane entries.
type proxy struct {
	keys []uint32
}

// CSSL is the immutable index produced by Build. The zero value is not
// usable; construct one with Build.
type CSSL struct {
	nodes []uint32

	// fastLanes is the concatenation of every padded lane, bottom
	// (level 0) first. laneStart[l]/laneEnd[l] mark lane l's
	// half-open slice fastLanes[laneStart[l]:laneEnd[l]).
	fastLanes []uint32
	laneStart []int
	laneEnd   []int

	proxies []proxy

	maxLevel uint32
	skip     uint32
}

// MaxLevel returns the number of fast lanes the CSSL was built with.
func (c *CSSL) MaxLevel() uint32 {
	return c.maxLevel
}

// Skip returns the clamped geometric stride used between lane levels.
func (c *CSSL) Skip() uint32 {
	return c.skip
}

// SortedKeys returns the sorted key sequence backing the index. The
// returned slice is owned by the CSSL and must not be mutated; indices
// returned by Find and FindRange refer into it.
func (c *CSSL) SortedKeys() []uint32 {
	return c.nodes
}

// lane returns the padded slice of fastLanes belonging to level l.
func (c *CSSL) lane(l int) []uint32 {
	return c.fastLanes[c.laneStart[l]:c.laneEnd[l]]
}

func clampSkip(skip uint32) uint32 {
	if skip < 2 {
		return 2
	}
	if skip > MaxSkip {
		return MaxSkip
	}
	return skip
}
