package multiblock

import "github.com/notargets/gomesh/mesh"

/*
Element node tables, as offsets on the refined grid where one element spans 2 intervals per axis. Linear elements
use the corner entries halved.
*/
var hexNodeOffsets = [27][3]int{
	// corners
	{0, 0, 0}, {2, 0, 0}, {2, 2, 0}, {0, 2, 0},
	{0, 0, 2}, {2, 0, 2}, {2, 2, 2}, {0, 2, 2},
	// edges 01,12,23,30,45,56,67,74,04,15,26,37
	{1, 0, 0}, {2, 1, 0}, {1, 2, 0}, {0, 1, 0},
	{1, 0, 2}, {2, 1, 2}, {1, 2, 2}, {0, 1, 2},
	{0, 0, 1}, {2, 0, 1}, {2, 2, 1}, {0, 2, 1},
	// face centers, in local block face order
	{1, 0, 1}, {2, 1, 1}, {1, 2, 1}, {0, 1, 1}, {1, 1, 0}, {1, 1, 2},
	// center
	{1, 1, 1},
}

var quadNodeOffsets = [9][2]int{
	{0, 0}, {2, 0}, {2, 2}, {0, 2},
	{1, 0}, {2, 1}, {1, 2}, {0, 1},
	{1, 1},
}

// faceKind returns the surface element matching a volume element kind
func faceKind(kind mesh.ElementType) mesh.ElementType {
	switch kind {
	case mesh.Hex20:
		return mesh.Quad8
	case mesh.Hex27:
		return mesh.Quad9
	}
	return mesh.Quad4
}

// edgeKind returns the curve element matching a volume element kind
func edgeKind(kind mesh.ElementType) mesh.ElementType {
	if kind.IsQuadratic() {
		return mesh.Line3
	}
	return mesh.Line2
}

func isOdd(i int) int { return i & 1 }

// keepFacePoint reports whether a refined face grid point carries a node for the element kind
func keepFacePoint(kind mesh.ElementType, i, j int) bool {
	return kind != mesh.Hex20 || isOdd(i)+isOdd(j) < 2
}

// keepBlockPoint reports whether a refined block grid point carries a node for the element kind
func keepBlockPoint(kind mesh.ElementType, i, j, k int) bool {
	return kind != mesh.Hex20 || isOdd(i)+isOdd(j)+isOdd(k) < 2
}

// gridStep is the number of refined grid intervals per element along an axis
func gridStep(kind mesh.ElementType) int {
	if kind.IsQuadratic() {
		return 2
	}
	return 1
}

// Closed form node counts for the interior of an edge, face or block with the given divisions
func edgeInteriorCount(kind mesh.ElementType, n int) int {
	return n*gridStep(kind) - 1
}

func faceInteriorCount(kind mesh.ElementType, nx, ny int) int {
	switch kind {
	case mesh.Hex20:
		return (2*nx-1)*(2*ny-1) - nx*ny
	case mesh.Hex27:
		return (2*nx - 1) * (2*ny - 1)
	}
	return (nx - 1) * (ny - 1)
}

func blockInteriorCount(kind mesh.ElementType, nx, ny, nz int) int {
	switch kind {
	case mesh.Hex20:
		// even interior indices: n-1, odd: n; at most one odd index
		ex, ey, ez := nx-1, ny-1, nz-1
		return ex*ey*ez + nx*ey*ez + ex*ny*ez + ex*ey*nz
	case mesh.Hex27:
		return (2*nx - 1) * (2*ny - 1) * (2*nz - 1)
	}
	return (nx - 1) * (ny - 1) * (nz - 1)
}
