package tui

// dotBits[row][col] is the braille dot for a micro-pixel inside its cell.
var dotBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// brailleBuf is a 2x4 dot raster per terminal cell.
type brailleBuf struct {
	w, h  int // in cells
	cells []uint8
}

func newBrailleBuf(w, h int) *brailleBuf {
	return &brailleBuf{w: w, h: h, cells: make([]uint8, w*h)}
}

// setPixel sets a micro-pixel; points off the buffer are dropped.
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 || mx >= 2*b.w || my >= 4*b.h {
		return
	}
	b.cells[(my/4)*b.w+mx/2] |= dotBits[my%4][mx%2]
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x1 < x0 {
		sx = -1
	}
	if y1 < y0 {
		sy = -1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// cross marks a plus sign centred on a micro-pixel.
func (b *brailleBuf) cross(mx, my int) {
	b.setPixel(mx, my)
	b.setPixel(mx-1, my)
	b.setPixel(mx+1, my)
	b.setPixel(mx, my-1)
	b.setPixel(mx, my+1)
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	row := make([]rune, b.w)
	for y := range out {
		for x, mask := range b.cells[y*b.w : (y+1)*b.w] {
			row[x] = ' '
			if mask != 0 {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(row)
	}
	return out
}
