package msdf

// ShelfAllocator implements shelf-based rectangle packing. Rectangles are
// placed left-to-right on horizontal shelves; a new shelf is started below
// when the current one runs out of width.
type ShelfAllocator struct {
	width   int
	height  int
	padding int
	shelves []shelf

	usedW int // widest extent consumed so far
	usedH int // lowest extent consumed so far
}

// shelf is a horizontal strip in the atlas.
type shelf struct {
	y      int // Y position of shelf top
	height int // height of the shelf (tallest item so far)
	x      int // next free X position
}

// NewShelfAllocator creates an allocator for the given page dimensions.
func NewShelfAllocator(width, height, padding int) *ShelfAllocator {
	return &ShelfAllocator{
		width:   width,
		height:  height,
		padding: padding,
	}
}

// Allocate finds space for a w x h rectangle. Returns the position and
// true on success, or -1, -1, false when the page is out of space.
func (a *ShelfAllocator) Allocate(w, h int) (x, y int, ok bool) {
	paddedW := w + a.padding
	paddedH := h + a.padding

	for i := range a.shelves {
		s := &a.shelves[i]
		if s.x+paddedW > a.width {
			continue
		}
		if h > s.height {
			// Taller than the shelf; the last shelf may grow downward.
			if i == len(a.shelves)-1 && s.y+paddedH <= a.height {
				s.height = h
				x, y = s.x, s.y
				s.x += paddedW
				a.extend(x+w, y+h)
				return x, y, true
			}
			continue
		}
		x, y = s.x, s.y
		s.x += paddedW
		a.extend(x+w, y+h)
		return x, y, true
	}

	// Open a new shelf below the last one.
	newY := 0
	if len(a.shelves) > 0 {
		last := a.shelves[len(a.shelves)-1]
		newY = last.y + last.height + a.padding
	}
	if newY+paddedH > a.height || paddedW > a.width {
		return -1, -1, false
	}
	a.shelves = append(a.shelves, shelf{y: newY, height: h, x: paddedW})
	a.extend(w, newY+h)
	return 0, newY, true
}

// CanFit reports whether a w x h rectangle could fit in an empty page of
// this allocator's dimensions.
func (a *ShelfAllocator) CanFit(w, h int) bool {
	return w+a.padding <= a.width && h+a.padding <= a.height
}

// UsedExtent returns the tight bounding extent of all allocations.
func (a *ShelfAllocator) UsedExtent() (w, h int) {
	return a.usedW, a.usedH
}

func (a *ShelfAllocator) extend(x, y int) {
	if x > a.usedW {
		a.usedW = x
	}
	if y > a.usedH {
		a.usedH = y
	}
}
