package cssl

import "sort"

// Build sorts keys ascending and constructs an immutable CSSL with the
// requested number of fast lanes and geometric stride.
//
// skip is clamped to [2, MaxSkip]; maxLevel is clamped to at least 1.
// An empty key slice yields a valid CSSL whose Find and FindRange
// always report "not found" — this is not an error (spec §7).
func Build(maxLevel uint32, skip uint32, keys []uint32) *CSSL {
	if maxLevel < 1 {
		maxLevel = 1
	}
	skip = clampSkip(skip)

	nodes := make([]uint32, len(keys))
	copy(nodes, keys)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })

	lanes := make([][]uint32, maxLevel)
	proxies := make([]proxy, 0, len(nodes)/int(skip)+1)

	var current proxy
	for k, key := range nodes {
		current.keys = append(current.keys, key)

		// Each level is aligned at skip^(l+1); once one level misses
		// alignment, every level above it misses too.
		stride := uint64(skip)
		for l := uint32(0); l < maxLevel; l++ {
			if uint64(k)%stride != 0 {
				break
			}
			lanes[l] = append(lanes[l], key)
			stride *= uint64(skip)
		}

		if k%int(skip) == int(skip)-1 {
			proxies = append(proxies, current)
			current = proxy{}
		}
	}
	// Emit the leftover partial block as the final proxy, or (for empty
	// input) a single empty proxy so P is never empty. A full final
	// block was already closed in the loop, so no empty proxy follows it.
	if len(current.keys) > 0 || len(proxies) == 0 {
		proxies = append(proxies, current)
	}

	c := &CSSL{
		nodes:    nodes,
		proxies:  proxies,
		maxLevel: maxLevel,
		skip:     skip,
	}

	padded := make([][]uint32, maxLevel)
	total := 0
	for l := uint32(0); l < maxLevel; l++ {
		padded[l] = padLane(lanes[l])
		total += len(padded[l])
	}

	c.laneStart = make([]int, maxLevel)
	c.laneEnd = make([]int, maxLevel)
	c.fastLanes = make([]uint32, 0, total)
	for l := uint32(0); l < maxLevel; l++ {
		c.laneStart[l] = len(c.fastLanes)
		c.fastLanes = append(c.fastLanes, padded[l]...)
		c.laneEnd[l] = len(c.fastLanes)
	}

	return c
}

// padLane right-pads lane with sentinel values up to the next multiple
// of MinFastLaneSize, guaranteeing every lane (even an empty one) is
// addressable without a bounds check during descent.
func padLane(lane []uint32) []uint32 {
	size := len(lane)
	if r := size % MinFastLaneSize; r != 0 {
		size += MinFastLaneSize - r
	}
	if size == 0 {
		size = MinFastLaneSize
	}

	out := make([]uint32, size)
	copy(out, lane)
	for i := len(lane); i < size; i++ {
		out[i] = sentinel
	}
	return out
}
