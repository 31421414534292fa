package schedule

// wideBitmap is a growable multi-word bit set, generalizing the
// per-table ValidBits bitmap from the teacher's TAGE branch predictor
// (proto/tage/tage.go: `table.ValidBits[idx>>5] >> (idx&31) & 1`) to an
// arbitrary, unbounded index range instead of a fixed 1024-entry table.
// Gate counts are not known ahead of parse time and can exceed any
// single machine word, so growable words replace the teacher's
// fixed-size array (per spec §9: "array pre-sizing is an implementation
// detail and should be replaced with growable containers").
type wideBitmap struct {
	words []uint64
}

const wordBits = 64

func newWideBitmap(capacityHint int) *wideBitmap {
	return &wideBitmap{words: make([]uint64, (capacityHint+wordBits-1)/wordBits)}
}

func (b *wideBitmap) grow(idx int) {
	need := idx/wordBits + 1
	for len(b.words) < need {
		b.words = append(b.words, 0)
	}
}

func (b *wideBitmap) Set(idx int) {
	b.grow(idx)
	b.words[idx/wordBits] |= 1 << uint(idx%wordBits)
}

func (b *wideBitmap) IsSet(idx int) bool {
	w := idx / wordBits
	if w >= len(b.words) {
		return false
	}
	return (b.words[w]>>uint(idx%wordBits))&1 != 0
}

func (b *wideBitmap) Clear(idx int) {
	w := idx / wordBits
	if w >= len(b.words) {
		return
	}
	b.words[w] &^= 1 << uint(idx%wordBits)
}

// PopCount returns how many bits are set, mirroring the OR-reduction
// trees the teacher's OoO model uses for critical-path classification
// (proto/ooo/ooo.go ClassifyPriority) generalized across words.
func (b *wideBitmap) PopCount() int {
	n := 0
	for _, w := range b.words {
		for w != 0 {
			w &= w - 1
			n++
		}
	}
	return n
}
