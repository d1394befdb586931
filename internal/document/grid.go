package document

import (
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// Grid reconstruction follows the ruled-lines strategy: table borders are
// drawn as thin filled rectangles or stroked cell boxes, so their edges give
// the row and column positions, and glyphs are assigned to cells by centre.
const (
	snapTolerance = 3.0
	joinTolerance = 3.0
	lineTolerance = 3.0
)

// glyph is one positioned text run with its font size.
type glyph struct {
	x, y, w, size float64
	s             string
}

func glyphsFromText(texts []pdf.Text) []glyph {
	out := make([]glyph, 0, len(texts))
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		out = append(out, glyph{x: t.X, y: t.Y, w: t.W, size: t.FontSize, s: norm.NFKC.String(t.S)})
	}
	return out
}

// layoutText orders glyphs top to bottom, left to right, breaking lines on
// baseline changes and inserting a space where the horizontal gap between
// runs is wider than a fraction of the font size.
func layoutText(glyphs []glyph) string {
	lines := groupLines(glyphs)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		var b strings.Builder
		var prev *glyph
		for i := range line {
			g := &line[i]
			if prev != nil && needsSpace(prev, g) {
				b.WriteByte(' ')
			}
			b.WriteString(g.s)
			prev = g
		}
		out = append(out, b.String())
	}
	return strings.Join(out, "\n")
}

func needsSpace(prev, g *glyph) bool {
	if strings.HasSuffix(prev.s, " ") || strings.HasPrefix(g.s, " ") {
		return false
	}
	gap := g.x - (prev.x + prev.w)
	threshold := 0.2 * g.size
	if threshold <= 0 {
		threshold = 2
	}
	return gap > threshold
}

func groupLines(glyphs []glyph) [][]glyph {
	sorted := append([]glyph(nil), glyphs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].y != sorted[j].y {
			return sorted[i].y > sorted[j].y
		}
		return sorted[i].x < sorted[j].x
	})

	var lines [][]glyph
	var lineY float64
	for _, g := range sorted {
		if len(lines) == 0 || math.Abs(lineY-g.y) > lineTolerance {
			lines = append(lines, nil)
			lineY = g.y
		}
		lines[len(lines)-1] = append(lines[len(lines)-1], g)
	}
	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool { return line[i].x < line[j].x })
	}
	return lines
}

// edge is a horizontal or vertical ruling. pos is y for horizontal edges and
// x for vertical ones; from and to run along the other axis.
type edge struct {
	horizontal bool
	pos        float64
	from, to   float64
}

func edgesFromRects(rects []pdf.Rect) []edge {
	var out []edge
	for _, r := range rects {
		x0, x1 := math.Min(r.Min.X, r.Max.X), math.Max(r.Min.X, r.Max.X)
		y0, y1 := math.Min(r.Min.Y, r.Max.Y), math.Max(r.Min.Y, r.Max.Y)
		w, h := x1-x0, y1-y0
		switch {
		case h < snapTolerance && w >= snapTolerance:
			out = append(out, edge{horizontal: true, pos: (y0 + y1) / 2, from: x0, to: x1})
		case w < snapTolerance && h >= snapTolerance:
			out = append(out, edge{pos: (x0 + x1) / 2, from: y0, to: y1})
		case w >= snapTolerance && h >= snapTolerance:
			out = append(out,
				edge{horizontal: true, pos: y0, from: x0, to: x1},
				edge{horizontal: true, pos: y1, from: x0, to: x1},
				edge{pos: x0, from: y0, to: y1},
				edge{pos: x1, from: y0, to: y1},
			)
		}
	}
	return out
}

// snapEdges moves edges whose positions lie within snapTolerance of each
// other onto their mean position, then joins collinear overlapping edges.
func snapEdges(edges []edge) []edge {
	var h, v []edge
	for _, e := range edges {
		if e.horizontal {
			h = append(h, e)
		} else {
			v = append(v, e)
		}
	}
	return append(joinCollinear(snapAxis(h)), joinCollinear(snapAxis(v))...)
}

func snapAxis(edges []edge) []edge {
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].pos < edges[j].pos })
	for start := 0; start < len(edges); {
		end := start + 1
		for end < len(edges) && edges[end].pos-edges[start].pos <= snapTolerance {
			end++
		}
		var sum float64
		for _, e := range edges[start:end] {
			sum += e.pos
		}
		mean := sum / float64(end-start)
		for i := start; i < end; i++ {
			edges[i].pos = mean
		}
		start = end
	}
	return edges
}

func joinCollinear(edges []edge) []edge {
	sort.SliceStable(edges, func(i, j int) bool {
		if edges[i].pos != edges[j].pos {
			return edges[i].pos < edges[j].pos
		}
		return edges[i].from < edges[j].from
	})
	var out []edge
	for _, e := range edges {
		if n := len(out); n > 0 && out[n-1].pos == e.pos && e.from <= out[n-1].to+joinTolerance {
			out[n-1].to = math.Max(out[n-1].to, e.to)
			continue
		}
		out = append(out, e)
	}
	return out
}

func intersects(h, v edge) bool {
	return v.pos >= h.from-joinTolerance && v.pos <= h.to+joinTolerance &&
		h.pos >= v.from-joinTolerance && h.pos <= v.to+joinTolerance
}

// components groups edges that touch into table regions.
func components(edges []edge) [][]edge {
	parent := make([]int, len(edges))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for i := range edges {
		for j := i + 1; j < len(edges); j++ {
			if edges[i].horizontal == edges[j].horizontal {
				continue
			}
			h, v := edges[i], edges[j]
			if !h.horizontal {
				h, v = v, h
			}
			if intersects(h, v) {
				parent[find(i)] = find(j)
			}
		}
	}

	groups := make(map[int][]edge)
	var order []int
	for i, e := range edges {
		root := find(i)
		if _, ok := groups[root]; !ok {
			order = append(order, root)
		}
		groups[root] = append(groups[root], e)
	}
	out := make([][]edge, 0, len(order))
	for _, root := range order {
		out = append(out, groups[root])
	}
	return out
}

// region is one ruled table: column boundaries left to right and row
// boundaries top to bottom.
type region struct {
	edges []edge
	xs    []float64
	ys    []float64
}

func newRegion(edges []edge) (region, bool) {
	xset, yset := map[float64]bool{}, map[float64]bool{}
	for _, e := range edges {
		if e.horizontal {
			yset[e.pos] = true
		} else {
			xset[e.pos] = true
		}
	}
	if len(xset) < 2 || len(yset) < 2 {
		return region{}, false
	}
	r := region{edges: edges}
	for x := range xset {
		r.xs = append(r.xs, x)
	}
	for y := range yset {
		r.ys = append(r.ys, y)
	}
	sort.Float64s(r.xs)
	sort.Sort(sort.Reverse(sort.Float64Slice(r.ys)))
	return r, true
}

func (r region) hasVertical(x, yTop, yBottom float64) bool {
	mid := (yTop + yBottom) / 2
	for _, e := range r.edges {
		if !e.horizontal && math.Abs(e.pos-x) <= snapTolerance && mid >= e.from-joinTolerance && mid <= e.to+joinTolerance {
			return true
		}
	}
	return false
}

func (r region) hasHorizontal(y, xLeft, xRight float64) bool {
	mid := (xLeft + xRight) / 2
	for _, e := range r.edges {
		if e.horizontal && math.Abs(e.pos-y) <= snapTolerance && mid >= e.from-joinTolerance && mid <= e.to+joinTolerance {
			return true
		}
	}
	return false
}

type cellPos struct{ row, col int }

// table assigns glyphs to cells. A cell with no ruling on its left joins the
// cell to its left; a cell with no ruling above joins the cell above. Joined
// positions come back nil, the way merged cells read in a ruled table.
func (r region) table(glyphs []glyph) RawTable {
	rows, cols := len(r.ys)-1, len(r.xs)-1
	origin := make([][]cellPos, rows)
	for i := 0; i < rows; i++ {
		origin[i] = make([]cellPos, cols)
		for j := 0; j < cols; j++ {
			switch {
			case j > 0 && !r.hasVertical(r.xs[j], r.ys[i], r.ys[i+1]):
				origin[i][j] = origin[i][j-1]
			case i > 0 && !r.hasHorizontal(r.ys[i], r.xs[j], r.xs[j+1]):
				origin[i][j] = origin[i-1][j]
			default:
				origin[i][j] = cellPos{i, j}
			}
		}
	}

	buckets := make(map[cellPos][]glyph)
	for _, g := range glyphs {
		cx := g.x + g.w/2
		cy := g.y + g.size*0.3
		i, j := r.locate(cx, cy)
		if i < 0 || j < 0 {
			continue
		}
		o := origin[i][j]
		buckets[o] = append(buckets[o], g)
	}

	out := make(RawTable, rows)
	for i := 0; i < rows; i++ {
		out[i] = make([]*string, cols)
		for j := 0; j < cols; j++ {
			if origin[i][j] != (cellPos{i, j}) {
				continue
			}
			text := layoutText(buckets[cellPos{i, j}])
			out[i][j] = &text
		}
	}
	return out
}

func (r region) locate(x, y float64) (int, int) {
	row, col := -1, -1
	for j := 0; j+1 < len(r.xs); j++ {
		if x >= r.xs[j] && x < r.xs[j+1] {
			col = j
			break
		}
	}
	for i := 0; i+1 < len(r.ys); i++ {
		if y <= r.ys[i] && y > r.ys[i+1] {
			row = i
			break
		}
	}
	return row, col
}

// buildTables reconstructs every ruled table on a page, top of page first.
func buildTables(glyphs []glyph, rects []pdf.Rect) []RawTable {
	var regions []region
	for _, group := range components(snapEdges(edgesFromRects(rects))) {
		if r, ok := newRegion(group); ok {
			regions = append(regions, r)
		}
	}
	sort.SliceStable(regions, func(i, j int) bool { return regions[i].ys[0] > regions[j].ys[0] })

	tables := make([]RawTable, 0, len(regions))
	for _, r := range regions {
		tables = append(tables, r.table(glyphs))
	}
	return tables
}
