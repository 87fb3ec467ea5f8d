package collision

// GID flag bits (same convention as Tiled TMX format). They are stripped
// before a tile id is matched against CollisionIDs.
const (
	tileFlipH    uint32 = 1 << 31 // horizontal flip
	tileFlipV    uint32 = 1 << 30 // vertical flip
	tileFlipD    uint32 = 1 << 29 // diagonal flip (90° rotation)
	tileFlagMask uint32 = tileFlipH | tileFlipV | tileFlipD
)

// TileColliderOptions configures GenerateTileColliders.
type TileColliderOptions struct {
	// X and Y are the world position of the top-left tile.
	X, Y float64
	// Tile dimensions in world units.
	TileWidth  float64
	TileHeight float64
	// CollisionIDs lists the solid tile ids. Empty means every id > 0.
	CollisionIDs []int
}

func (o *TileColliderOptions) solid(id int) bool {
	id = int(uint32(id) &^ tileFlagMask)
	if len(o.CollisionIDs) == 0 {
		return id > 0
	}
	for _, c := range o.CollisionIDs {
		if c == id {
			return true
		}
	}
	return false
}

// GenerateTileColliders merges the solid tiles of a row-major grid
// (grid[row][col]) into rectangles. Columns are scanned left to right and
// each column top to bottom. From every solid tile not yet covered, the
// rectangle first grows down while tiles are solid, then right while the
// whole column span is solid and uncovered. Rows shorter than the first row
// are treated as empty past their end.
func GenerateTileColliders(grid [][]int, opts TileColliderOptions) []Rect {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil
	}
	rows, cols := len(grid), len(grid[0])

	// covered[row*cols+col] marks tiles already part of a rectangle.
	covered := make([]bool, rows*cols)
	isFree := func(row, col int) bool {
		if col >= len(grid[row]) || covered[row*cols+col] {
			return false
		}
		return opts.solid(grid[row][col])
	}

	var rects []Rect
	for col := 0; col < cols; col++ {
		for row := 0; row < rows; row++ {
			if !isFree(row, col) {
				continue
			}

			endRow := row
			for endRow+1 < rows && isFree(endRow+1, col) {
				endRow++
			}

			endCol := col
		grow:
			for endCol+1 < cols {
				for r := row; r <= endRow; r++ {
					if !isFree(r, endCol+1) {
						break grow
					}
				}
				endCol++
			}

			for r := row; r <= endRow; r++ {
				for c := col; c <= endCol; c++ {
					covered[r*cols+c] = true
				}
			}

			rects = append(rects, Rect{
				X:      opts.X + float64(col)*opts.TileWidth,
				Y:      opts.Y + float64(row)*opts.TileHeight,
				Width:  float64(endCol-col+1) * opts.TileWidth,
				Height: float64(endRow-row+1) * opts.TileHeight,
			})
		}
	}
	return rects
}

// AddTileColliders registers one static body per rectangle and returns the
// bodies in rectangle order. opts supplies everything but position, size and
// type.
func (w *World) AddTileColliders(rects []Rect, opts BodyOptions) []*Body {
	bodies := make([]*Body, 0, len(rects))
	for _, r := range rects {
		o := opts
		o.Type = BodyStatic
		center := r.Center()
		o.Position = &center
		o.Size = Size{Width: r.Width, Height: r.Height}
		o.Offset = Vec2{}
		b := NewBody(o)
		w.AddBody(b)
		bodies = append(bodies, b)
	}
	return bodies
}
