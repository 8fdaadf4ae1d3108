package textbuf

import (
	"slices"
	"sort"
)

// mark is one endpoint of a managed span. Marks left of the split store
// their offset; marks right of it store offset minus the buffer length, so
// an edit at the split shifts every later mark without touching it.
type mark struct {
	val   int
	right bool
	dead  bool
	ref   *ref
}

// ref ties the two marks of one span to its list and handle.
type ref struct {
	list       *SpanList
	handle     int
	start, end *mark
}

// markIndex keeps the marks of all managed lists ordered by offset, split at
// the most recent edit. left is ascending; right is descending so that its
// top is the mark nearest the split. Dead marks are dropped when the split
// moves across them.
type markIndex struct {
	left, right []*mark
	length      int
}

func (x *markIndex) pos(m *mark) int {
	if m.right {
		return m.val + x.length
	}
	return m.val
}

func (x *markIndex) toLeft(m *mark) {
	if m.right {
		m.val += x.length
		m.right = false
	}
}

func (x *markIndex) toRight(m *mark) {
	if !m.right {
		m.val -= x.length
		m.right = true
	}
}

func (x *markIndex) popLeft() *mark {
	n := len(x.left) - 1
	m := x.left[n]
	x.left[n] = nil
	x.left = x.left[:n]
	return m
}

func (x *markIndex) popRight() *mark {
	n := len(x.right) - 1
	m := x.right[n]
	x.right[n] = nil
	x.right = x.right[:n]
	return m
}

// split moves the split to pos: afterwards no left mark lies after pos and
// no right mark before it.
func (x *markIndex) split(pos int) {
	for len(x.left) > 0 && x.left[len(x.left)-1].val > pos {
		if m := x.popLeft(); !m.dead {
			x.toRight(m)
			x.right = append(x.right, m)
		}
	}
	for len(x.right) > 0 && x.pos(x.right[len(x.right)-1]) < pos {
		if m := x.popRight(); !m.dead {
			x.toLeft(m)
			x.left = append(x.left, m)
		}
	}
}

func (x *markIndex) add(m *mark, pos int) {
	x.split(pos)
	m.val, m.right = pos, false
	x.left = append(x.left, m)
}

// addAll merges marks whose val already holds their offset.
func (x *markIndex) addAll(marks []*mark) {
	all := make([]*mark, 0, len(x.left)+len(x.right)+len(marks))
	for _, m := range x.left {
		if !m.dead {
			all = append(all, m)
		}
	}
	for _, m := range slices.Backward(x.right) {
		if !m.dead {
			x.toLeft(m)
			all = append(all, m)
		}
	}
	for _, m := range marks {
		m.right = false
		all = append(all, m)
	}
	slices.SortStableFunc(all, func(a, b *mark) int { return a.val - b.val })
	x.left, x.right = all, nil
}

// insert shifts marks for n bytes inserted at pos. Marks after pos move.
// At pos, start marks and the ends of empty spans move, other end marks
// stay; with grow set every mark at pos moves.
func (x *markIndex) insert(pos, n int, grow bool) {
	x.split(pos)

	var at []*mark
	for len(x.left) > 0 && x.left[len(x.left)-1].val == pos {
		at = append(at, x.popLeft())
	}
	for len(x.right) > 0 && x.pos(x.right[len(x.right)-1]) == pos {
		m := x.popRight()
		x.toLeft(m)
		at = append(at, m)
	}

	for _, m := range at {
		if m.dead {
			continue
		}
		if !grow && m == m.ref.end && x.pos(m.ref.start) < pos {
			x.left = append(x.left, m)
			continue
		}
		x.toRight(m)
		x.right = append(x.right, m)
	}
	x.length += n
}

// remove collapses marks inside [start, end) onto start and shifts the
// marks after it.
func (x *markIndex) remove(start, end int) {
	x.split(start)
	length := x.length - (end - start)
	for i := len(x.right) - 1; i >= 0; i-- {
		m := x.right[i]
		if x.pos(m) >= end {
			break
		}
		m.val = start - length
	}
	x.length = length
}

// each calls fn for every live mark at an offset in [from, to].
func (x *markIndex) each(from, to int, fn func(m *mark)) {
	i := sort.Search(len(x.left), func(i int) bool { return x.left[i].val >= from })
	for ; i < len(x.left) && x.left[i].val <= to; i++ {
		if m := x.left[i]; !m.dead {
			fn(m)
		}
	}
	j := sort.Search(len(x.right), func(j int) bool { return x.pos(x.right[j]) <= to })
	for ; j < len(x.right) && x.pos(x.right[j]) >= from; j++ {
		if m := x.right[j]; !m.dead {
			fn(m)
		}
	}
}
