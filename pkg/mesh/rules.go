package mesh

// CompressionFactor scales the inward nudge of a quadrant's inner corner
// edge, as a fraction of half the radius.
const CompressionFactor = 0.20

// edgeLoc names a block edge by the two faces that meet at it.
type edgeLoc [2]Side

// quadrantRule lists the edges a quadrant construction touches, per plane
// and quadrant number.
type quadrantRule struct {
	collapse   edgeLoc    // top and side blocks
	axis       edgeLoc    // center block; its start is the pivot
	topArc     [2]edgeLoc // top block, one per out-of-plane layer
	sideArc    [2]edgeLoc // side block, one per out-of-plane layer
	topRadial  edgeLoc
	sideRadial edgeLoc
}

// quadrantRules is indexed by plane, then quadrant number minus one.
var quadrantRules = [3][4]quadrantRule{
	PlaneXY: {
		{
			collapse:   edgeLoc{Top, Right},
			axis:       edgeLoc{Bottom, Left},
			topArc:     [2]edgeLoc{{Top, Front}, {Top, Back}},
			sideArc:    [2]edgeLoc{{Right, Front}, {Right, Back}},
			topRadial:  edgeLoc{Top, Left},
			sideRadial: edgeLoc{Bottom, Right},
		},
		{
			collapse:   edgeLoc{Top, Left},
			axis:       edgeLoc{Bottom, Right},
			topArc:     [2]edgeLoc{{Top, Front}, {Top, Back}},
			sideArc:    [2]edgeLoc{{Left, Front}, {Left, Back}},
			topRadial:  edgeLoc{Top, Right},
			sideRadial: edgeLoc{Bottom, Left},
		},
		{
			collapse:   edgeLoc{Bottom, Left},
			axis:       edgeLoc{Top, Right},
			topArc:     [2]edgeLoc{{Bottom, Front}, {Bottom, Back}},
			sideArc:    [2]edgeLoc{{Left, Front}, {Left, Back}},
			topRadial:  edgeLoc{Bottom, Right},
			sideRadial: edgeLoc{Top, Left},
		},
		{
			collapse:   edgeLoc{Bottom, Right},
			axis:       edgeLoc{Top, Left},
			topArc:     [2]edgeLoc{{Bottom, Front}, {Bottom, Back}},
			sideArc:    [2]edgeLoc{{Right, Front}, {Right, Back}},
			topRadial:  edgeLoc{Bottom, Left},
			sideRadial: edgeLoc{Top, Right},
		},
	},
	PlaneYZ: {
		{
			collapse:   edgeLoc{Top, Front},
			axis:       edgeLoc{Bottom, Back},
			topArc:     [2]edgeLoc{{Front, Right}, {Front, Left}},
			sideArc:    [2]edgeLoc{{Top, Right}, {Top, Left}},
			topRadial:  edgeLoc{Bottom, Front},
			sideRadial: edgeLoc{Top, Back},
		},
		{
			collapse:   edgeLoc{Bottom, Front},
			axis:       edgeLoc{Top, Back},
			topArc:     [2]edgeLoc{{Front, Right}, {Front, Left}},
			sideArc:    [2]edgeLoc{{Bottom, Right}, {Bottom, Left}},
			topRadial:  edgeLoc{Top, Front},
			sideRadial: edgeLoc{Bottom, Back},
		},
		{
			collapse:   edgeLoc{Bottom, Back},
			axis:       edgeLoc{Top, Front},
			topArc:     [2]edgeLoc{{Back, Right}, {Back, Left}},
			sideArc:    [2]edgeLoc{{Bottom, Right}, {Bottom, Left}},
			topRadial:  edgeLoc{Top, Back},
			sideRadial: edgeLoc{Bottom, Front},
		},
		{
			collapse:   edgeLoc{Top, Back},
			axis:       edgeLoc{Bottom, Front},
			topArc:     [2]edgeLoc{{Back, Right}, {Back, Left}},
			sideArc:    [2]edgeLoc{{Top, Right}, {Top, Left}},
			topRadial:  edgeLoc{Bottom, Back},
			sideRadial: edgeLoc{Top, Front},
		},
	},
	PlaneZX: {
		{
			collapse:   edgeLoc{Front, Right},
			axis:       edgeLoc{Back, Left},
			topArc:     [2]edgeLoc{{Right, Top}, {Right, Bottom}},
			sideArc:    [2]edgeLoc{{Front, Top}, {Front, Bottom}},
			topRadial:  edgeLoc{Right, Back},
			sideRadial: edgeLoc{Left, Front},
		},
		{
			collapse:   edgeLoc{Back, Right},
			axis:       edgeLoc{Front, Left},
			topArc:     [2]edgeLoc{{Right, Top}, {Right, Bottom}},
			sideArc:    [2]edgeLoc{{Back, Top}, {Back, Bottom}},
			topRadial:  edgeLoc{Right, Front},
			sideRadial: edgeLoc{Left, Back},
		},
		{
			collapse:   edgeLoc{Back, Left},
			axis:       edgeLoc{Front, Right},
			topArc:     [2]edgeLoc{{Left, Top}, {Left, Bottom}},
			sideArc:    [2]edgeLoc{{Back, Top}, {Back, Bottom}},
			topRadial:  edgeLoc{Left, Front},
			sideRadial: edgeLoc{Right, Back},
		},
		{
			collapse:   edgeLoc{Front, Left},
			axis:       edgeLoc{Back, Right},
			topArc:     [2]edgeLoc{{Left, Top}, {Left, Bottom}},
			sideArc:    [2]edgeLoc{{Front, Top}, {Front, Bottom}},
			topRadial:  edgeLoc{Left, Back},
			sideRadial: edgeLoc{Right, Front},
		},
	},
}

// blockShift gives, per quadrant, the grid step from the center block to
// the top block (along the plane's second axis) and to the side block
// (along its first axis).
var blockShift = [4]struct{ top, side int }{
	{1, 1},
	{1, -1},
	{-1, -1},
	{-1, 1},
}

// innerShift gives, per quadrant, the sign of the inner-corner nudge on the
// plane's first and second axes. It always points back at the pivot.
var innerShift = [4][2]float64{
	{-1, -1},
	{1, -1},
	{1, 1},
	{-1, 1},
}

// quadrantAngles holds, per quadrant, the angles in degrees of the outer
// corner, the side-block arc and the top-block arc, measured from the
// plane's first axis toward its second.
var quadrantAngles = [4]struct{ corner, sideArc, topArc float64 }{
	{45, 22.5, 67.5},
	{135, 157.5, 112.5},
	{225, 202.5, 247.5},
	{315, 337.5, 292.5},
}
