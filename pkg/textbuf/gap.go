package textbuf

import (
	"bytes"
	"strings"
)

// minGap is the smallest gap allocated when the text grows.
const minGap = 64

// gapText stores the working text with a movable gap at the last edit.
// Passes edit the buffer mostly from left to right, so moving the gap
// costs about as much as the distance between neighbouring edits. src runs
// parallel to b and shares its gap.
type gapText struct {
	b          []byte
	src        []int
	gap0, gap1 int
}

func newGapText(text string, trackSource bool) gapText {
	g := gapText{b: []byte(text), gap0: len(text), gap1: len(text)}
	if trackSource {
		g.src = make([]int, len(text))
		for i := range g.src {
			g.src[i] = i
		}
	}
	return g
}

func (g *gapText) gapLen() int {
	return g.gap1 - g.gap0
}

func (g *gapText) len() int {
	return len(g.b) - g.gapLen()
}

// phys maps a logical offset to its index in b.
func (g *gapText) phys(i int) int {
	if i < g.gap0 {
		return i
	}
	return i + g.gapLen()
}

func (g *gapText) at(i int) byte {
	return g.b[g.phys(i)]
}

func (g *gapText) srcAt(i int) int {
	return g.src[g.phys(i)]
}

func (g *gapText) moveGap(pos int) {
	switch {
	case pos < g.gap0:
		n := g.gap0 - pos
		copy(g.b[g.gap1-n:g.gap1], g.b[pos:g.gap0])
		if g.src != nil {
			copy(g.src[g.gap1-n:g.gap1], g.src[pos:g.gap0])
		}
		g.gap0 -= n
		g.gap1 -= n
	case pos > g.gap0:
		n := pos - g.gap0
		copy(g.b[g.gap0:g.gap0+n], g.b[g.gap1:g.gap1+n])
		if g.src != nil {
			copy(g.src[g.gap0:g.gap0+n], g.src[g.gap1:g.gap1+n])
		}
		g.gap0 += n
		g.gap1 += n
	}
}

// reserve makes the gap at least n bytes long.
func (g *gapText) reserve(n int) {
	if g.gapLen() >= n {
		return
	}
	tail := len(g.b) - g.gap1
	size := max(2*len(g.b), g.len()+n+minGap)

	b := make([]byte, size)
	copy(b, g.b[:g.gap0])
	copy(b[size-tail:], g.b[g.gap1:])
	g.b = b

	if g.src != nil {
		src := make([]int, size)
		copy(src, g.src[:g.gap0])
		copy(src[size-tail:], g.src[g.gap1:])
		g.src = src
	}
	g.gap1 = size - tail
}

// insert places text at pos. Inserted bytes map to origin in the source.
func (g *gapText) insert(pos int, text string, origin int) {
	g.moveGap(pos)
	g.reserve(len(text))
	copy(g.b[g.gap0:], text)
	if g.src != nil {
		for i := range len(text) {
			g.src[g.gap0+i] = origin
		}
	}
	g.gap0 += len(text)
}

func (g *gapText) delete(start, end int) {
	g.moveGap(start)
	g.gap1 += end - start
}

// overwrite replaces the bytes at pos with text without changing the length.
func (g *gapText) overwrite(pos int, text string) {
	g.moveGap(pos + len(text))
	copy(g.b[pos:], text)
}

func (g *gapText) slice(start, end int) string {
	switch {
	case end <= g.gap0:
		return string(g.b[start:end])
	case start >= g.gap0:
		return string(g.b[start+g.gapLen() : end+g.gapLen()])
	default:
		var sb strings.Builder
		sb.Grow(end - start)
		sb.Write(g.b[start:g.gap0])
		sb.Write(g.b[g.gap1 : end+g.gapLen()])
		return sb.String()
	}
}

// index returns the first offset of needle within [from, to), or -1.
func (g *gapText) index(needle []byte, from, to int) int {
	if to <= g.gap0 {
		return found(bytes.Index(g.b[from:to], needle), from)
	}
	if from >= g.gap0 {
		return found(bytes.Index(g.b[from+g.gapLen():to+g.gapLen()], needle), from)
	}

	if idx := bytes.Index(g.b[from:g.gap0], needle); idx >= 0 {
		return from + idx
	}

	// A match straddling the gap starts in the last len(needle)-1 bytes
	// before it.
	if k := len(needle) - 1; k > 0 {
		start := max(from, g.gap0-k)
		end := min(to, g.gap0+k)
		window := make([]byte, 0, end-start)
		window = append(window, g.b[start:g.gap0]...)
		window = append(window, g.b[g.gap1:end+g.gapLen()]...)
		if idx := bytes.Index(window, needle); idx >= 0 {
			return start + idx
		}
	}

	return found(bytes.Index(g.b[g.gap1:to+g.gapLen()], needle), g.gap0)
}

func found(idx, base int) int {
	if idx < 0 {
		return -1
	}
	return base + idx
}
