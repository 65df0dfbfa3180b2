package vision

import "image"

// ColumnOccupancy returns, per column of g, the fraction of pixels darker than
// threshold. dst is reused when it has enough capacity.
func ColumnOccupancy(g *image.Gray, threshold uint8, dst []float64) []float64 {
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	if cap(dst) < w {
		dst = make([]float64, w)
	}
	dst = dst[:w]
	if w <= 0 || h <= 0 {
		return dst
	}
	counts := make([]int, w)
	for y := 0; y < h; y++ {
		row := g.Pix[y*g.Stride : y*g.Stride+w]
		for x, v := range row {
			if v < threshold {
				counts[x]++
			}
		}
	}
	for x, n := range counts {
		dst[x] = float64(n) / float64(h)
	}
	return dst
}

// Binarize marks columns whose occupancy reaches frac.
func Binarize(occ []float64, frac float64, dst []bool) []bool {
	if cap(dst) < len(occ) {
		dst = make([]bool, len(occ))
	}
	dst = dst[:len(occ)]
	for i, v := range occ {
		dst[i] = v >= frac
	}
	return dst
}

// CloseGaps applies a 1-D morphological closing of length gap to hit: a
// dilation that extends every occupied column gap columns to the right,
// followed by an erosion over the same window. Interior gaps of at most gap
// columns are filled; outer run bounds are unchanged. gap <= 0 returns a copy.
func CloseGaps(hit []bool, gap int) []bool {
	n := len(hit)
	out := make([]bool, n)
	if gap <= 0 || n == 0 {
		copy(out, hit)
		return out
	}
	// Dilated signal over n+gap samples so runs touching the right edge keep
	// their extent through the erosion.
	dil := make([]bool, n+gap)
	last := -gap - 1
	for i := range dil {
		if i < n && hit[i] {
			last = i
		}
		dil[i] = i-last <= gap
	}
	// Erosion: column i survives when dil[i..i+gap] are all set; samples past
	// the dilated signal count as set.
	unset := len(dil)
	for i := len(dil) - 1; i >= 0; i-- {
		if !dil[i] {
			unset = i
		}
		if i < n {
			out[i] = unset > i+gap
		}
	}
	return out
}

// FirstRun returns the bounds of the leftmost contiguous run of set columns.
func FirstRun(hit []bool) (lead, trail int, ok bool) {
	lead = -1
	for i, v := range hit {
		if v {
			lead = i
			break
		}
	}
	if lead < 0 {
		return 0, 0, false
	}
	trail = lead
	for trail+1 < len(hit) && hit[trail+1] {
		trail++
	}
	return lead, trail, true
}
