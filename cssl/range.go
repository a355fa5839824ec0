package cssl

// RangeSearchBlockSize is the fixed trip count of the inner block scan
// in FindRange. The loop body never breaks mid-block so the compiler
// can lower the bounds comparison across the block to SIMD; only the
// loop over blocks breaks early.
const RangeSearchBlockSize = 8

// FindRange returns the maximal half-open index range [begin, end)
// into SortedKeys such that every key in it lies in [lo, hi]. It
// reports false if lo is not present as a key; the ordering of lo and
// hi is the caller's responsibility (spec §4.3).
func (c *CSSL) FindRange(lo, hi uint32) (int, int, bool) {
	begin, ok := c.Find(lo)
	if !ok {
		return 0, 0, false
	}
	// Find may land anywhere inside a run of duplicates; step back to
	// the first occurrence so the range covers the whole run.
	for begin > 0 && c.nodes[begin-1] == lo {
		begin--
	}

	// Default: no bottom-lane crossing is found, meaning the whole
	// dataset (from lo onward) lies within [lo, hi].
	endPos := len(c.proxies) - 1

	bottom := c.lane(0)
	nblocks := len(bottom) / RangeSearchBlockSize
	b0 := (begin/int(c.skip) + 1) / RangeSearchBlockSize

	for b := b0; b < nblocks; b++ {
		anyOver := false
		for i := 0; i < RangeSearchBlockSize; i++ {
			anyOver = anyOver || bottom[b*RangeSearchBlockSize+i] > hi
		}
		if !anyOver {
			continue
		}
		crossing := 0
		for i := 0; i < RangeSearchBlockSize; i++ {
			if bottom[b*RangeSearchBlockSize+i] > hi {
				crossing = i
				break
			}
		}
		endPos = b*RangeSearchBlockSize + crossing - 1
		break
	}

	if endPos < 0 {
		endPos = 0
	}
	if endPos >= len(c.proxies) {
		endPos = len(c.proxies) - 1
	}

	px := c.proxies[endPos]
	offset := len(px.keys) - 1
	for i := 1; i < len(px.keys); i++ {
		if px.keys[i] > hi {
			offset = i - 1
			break
		}
	}

	return begin, int(c.skip)*endPos + offset + 1, true
}
