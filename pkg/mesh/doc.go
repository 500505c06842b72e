// Package mesh implements the multi-block hexahedral topology kernel.
//
// A MultiBlock owns every vertex in a single arena and every block built
// over the vertex lattice. Blocks, faces and edges never copy coordinates;
// they hold vertex ids, so moving a vertex reshapes every entity that
// references it.
//
// Construction follows a fixed order: split-plane validation, vertex
// lattice, blocks (with their faces and edges), slices, multi-index and
// grid index. After construction the mutation primitives (move, collapse,
// move-collapse, scale, arc, spline) and the quadrant, semicircle and
// circle constructions reshape the grid in place.
//
// A MultiBlock is not safe for concurrent use.
package mesh
