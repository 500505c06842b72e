package mesh

// Slice is one layer of blocks in a cardinal plane: the blocks sharing a z
// index for xy, an x index for yz and a y index for zx.
type Slice struct {
	Plane  Plane
	Index  int
	Blocks []int
}

// buildSlices groups block ids by layer. Within a layer ids are listed
// row by row: xy by (y, x), yz by (z, y) and zx by (x, z).
func buildSlices(c Counts) [3][]Slice {
	var out [3][]Slice
	id := func(ix, iy, iz int) int { return ix + c.X*(iy+c.Y*iz) }

	for iz := 0; iz < c.Z; iz++ {
		s := Slice{Plane: PlaneXY, Index: iz}
		for iy := 0; iy < c.Y; iy++ {
			for ix := 0; ix < c.X; ix++ {
				s.Blocks = append(s.Blocks, id(ix, iy, iz))
			}
		}
		out[PlaneXY] = append(out[PlaneXY], s)
	}
	for ix := 0; ix < c.X; ix++ {
		s := Slice{Plane: PlaneYZ, Index: ix}
		for iz := 0; iz < c.Z; iz++ {
			for iy := 0; iy < c.Y; iy++ {
				s.Blocks = append(s.Blocks, id(ix, iy, iz))
			}
		}
		out[PlaneYZ] = append(out[PlaneYZ], s)
	}
	for iy := 0; iy < c.Y; iy++ {
		s := Slice{Plane: PlaneZX, Index: iy}
		for ix := 0; ix < c.X; ix++ {
			for iz := 0; iz < c.Z; iz++ {
				s.Blocks = append(s.Blocks, id(ix, iy, iz))
			}
		}
		out[PlaneZX] = append(out[PlaneZX], s)
	}
	return out
}

// PlaneBlockCount returns the number of blocks in each slice of plane p.
func (c Counts) PlaneBlockCount(p Plane) int {
	switch p {
	case PlaneYZ:
		return c.Y * c.Z
	case PlaneZX:
		return c.Z * c.X
	}
	return c.X * c.Y
}
