package mesh

import "github.com/go-gl/mathgl/mgl32"

// Face indexes the six cube faces.
type Face uint8

const (
	FaceNorth Face = iota // -Z
	FaceSouth             // +Z
	FaceUp                // +Y
	FaceDown              // -Y
	FaceWest              // -X
	FaceEast              // +X
)

// Faces lists every face in index order.
var Faces = [6]Face{FaceNorth, FaceSouth, FaceUp, FaceDown, FaceWest, FaceEast}

func (f Face) String() string {
	return [...]string{"north", "south", "up", "down", "west", "east"}[f]
}

// Normal returns the outward unit offset of the face.
func (f Face) Normal() (dx, dy, dz int) {
	n := faceNormals[f]
	return n[0], n[1], n[2]
}

var faceNormals = [6][3]int{
	{0, 0, -1},
	{0, 0, 1},
	{0, 1, 0},
	{0, -1, 0},
	{-1, 0, 0},
	{1, 0, 0},
}

// axis of the face normal, and the in-plane axes that the texture u and v
// coordinates run along.
var (
	faceAxis  = [6]int{2, 2, 1, 1, 0, 0}
	faceUAxis = [6]int{0, 0, 0, 0, 2, 2}
	faceVAxis = [6]int{1, 1, 2, 2, 1, 1}
)

var cubeVerts = [8]mgl32.Vec3{
	{0, 0, 0},
	{1, 0, 0},
	{1, 1, 0},
	{0, 1, 0},
	{0, 0, 1},
	{1, 0, 1},
	{1, 1, 1},
	{0, 1, 1},
}

// faceCorners lists each face's corners as o, o+v, o+u+v, o+u. The triangles
// (0,1,2) and (0,2,3) wind so that (c1-c0)×(c2-c0) points out of the cube.
var faceCorners = [6][4]int{
	{0, 3, 2, 1},
	{5, 6, 7, 4},
	{3, 7, 6, 2},
	{1, 5, 4, 0},
	{4, 7, 3, 0},
	{1, 2, 6, 5},
}

// baseUVs matches the corner order of faceCorners.
var baseUVs = [4]mgl32.Vec2{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

// quadIndices are the two triangles of a quad relative to its first vertex.
var quadIndices = [6]uint32{0, 1, 2, 0, 2, 3}
