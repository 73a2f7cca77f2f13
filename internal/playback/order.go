package playback

import "math/rand/v2"

// playOrder is the sequence of library track IDs the engine walks
// through, with the position of the loaded track inside it. Library
// order is the identity sequence; shuffle replaces it with a
// permutation.
type playOrder struct {
	ids []int
	pos int // index into ids, -1 when nothing is loaded
}

func newPlayOrder(n int) *playOrder {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	return &playOrder{ids: ids, pos: -1}
}

// current returns the loaded track ID, if any.
func (o *playOrder) current() (int, bool) {
	if o.pos < 0 || o.pos >= len(o.ids) {
		return 0, false
	}
	return o.ids[o.pos], true
}

func (o *playOrder) position() int { return o.pos }

func (o *playOrder) len() int { return len(o.ids) }

// clear unloads the current track.
func (o *playOrder) clear() { o.pos = -1 }

// next moves to the following track, or to the first when nothing is
// loaded. Returns false at the end of the order.
func (o *playOrder) next() (int, bool) {
	if o.pos+1 >= len(o.ids) {
		return 0, false
	}
	o.pos++
	return o.ids[o.pos], true
}

// prev moves to the preceding track. Returns false at the start of the
// order or when nothing is loaded.
func (o *playOrder) prev() (int, bool) {
	if o.pos <= 0 {
		return 0, false
	}
	o.pos--
	return o.ids[o.pos], true
}

// first moves to the start of the order.
func (o *playOrder) first() (int, bool) {
	if len(o.ids) == 0 {
		return 0, false
	}
	o.pos = 0
	return o.ids[0], true
}

// last moves to the end of the order.
func (o *playOrder) last() (int, bool) {
	if len(o.ids) == 0 {
		return 0, false
	}
	o.pos = len(o.ids) - 1
	return o.ids[o.pos], true
}

// moveTo loads the track with the given ID.
func (o *playOrder) moveTo(id int) bool {
	for i, v := range o.ids {
		if v == id {
			o.pos = i
			return true
		}
	}
	return false
}

// shuffle rebuilds the order as a random permutation. The loaded track,
// if any, is anchored at the front so playback continues from it.
func (o *playOrder) shuffle() {
	cur, loaded := o.current()
	rand.Shuffle(len(o.ids), func(i, j int) { //nolint:gosec // not security-sensitive
		o.ids[i], o.ids[j] = o.ids[j], o.ids[i]
	})
	if !loaded {
		o.pos = -1
		return
	}
	for i, v := range o.ids {
		if v == cur {
			o.ids[0], o.ids[i] = o.ids[i], o.ids[0]
			break
		}
	}
	o.pos = 0
}

// restore puts the order back to library order, keeping the loaded track.
func (o *playOrder) restore() {
	cur, loaded := o.current()
	for i := range o.ids {
		o.ids[i] = i
	}
	if loaded {
		o.pos = cur
	} else {
		o.pos = -1
	}
}
