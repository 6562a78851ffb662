package render

import (
	"errors"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// ViewConfig positions the preview camera.
type ViewConfig struct {
	// what position (point) to look at
	Lookat r3.Vec
	// which way is up (direction)
	Up r3.Vec
	// where the camera/eye located at (point)
	Eyepos r3.Vec
	Far    float64
	Near   float64
}

// Solid is a renderable body: a triangle mesh with its world placement
// (center position and rotation about the z axis) and display color.
type Solid struct {
	Model    []Triangle3
	X, Y     float64
	Rotation float64 // radians about the z axis
	Color    string  // hex color, e.g. "#468966"
}

// SavePNG software-renders solids to a PNG file using a Phong shader. The
// scene is fit into a bi-unit cube before the camera applies, so the view
// configuration is in normalized coordinates.
func SavePNG(path string, solids []Solid, view ViewConfig) error {
	if len(solids) == 0 {
		return errors.New("render: no solids to draw")
	}
	const (
		width, height = 1920, 1080 // output width and height in pixels
		scale         = 2          // supersampling factor
		fovy          = 30         // vertical field of view in degrees
	)

	var (
		eye    = fauxgl.V(view.Eyepos.X, view.Eyepos.Y, view.Eyepos.Z) // camera position
		center = fauxgl.V(view.Lookat.X, view.Lookat.Y, view.Lookat.Z) // view center position
		up     = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)             // up vector
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()                  // light direction
	)

	// place each solid in world coordinates
	meshes := make([]*fauxgl.Mesh, len(solids))
	bounds := fauxgl.EmptyBox
	for i, s := range solids {
		mesh := fauxglMesh(s.Model)
		placement := fauxgl.Rotate(fauxgl.V(0, 0, 1), s.Rotation).
			Translate(fauxgl.V(s.X, s.Y, 0))
		mesh.Transform(placement)
		meshes[i] = mesh
		bounds = bounds.Extend(mesh.BoundingBox())
	}
	// fit the whole scene in a bi-unit cube centered at the origin
	fit := fitBiUnitCube(bounds)
	// create a rendering context
	context := fauxgl.NewContext(width*scale, height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	// create transformation matrix and light direction
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	for i, mesh := range meshes {
		mesh.Transform(fit)
		// use builtin phong shader, one per solid for per-gear color
		shader := fauxgl.NewPhongShader(matrix, light, eye)
		shader.ObjectColor = fauxgl.HexColor(solids[i].Color)
		context.Shader = shader
		context.DrawMesh(mesh)
	}
	// downsample image for antialiasing
	image := context.Image()
	image = resize.Resize(width, height, image, resize.Bilinear)
	return fauxgl.SavePNG(path, image)
}

func fauxglMesh(model []Triangle3) *fauxgl.Mesh {
	triangles := make([]*fauxgl.Triangle, len(model))
	for i, t := range model {
		triangles[i] = fauxgl.NewTriangleForPoints(
			fauxgl.V(t.V[0].X, t.V[0].Y, t.V[0].Z),
			fauxgl.V(t.V[1].X, t.V[1].Y, t.V[1].Z),
			fauxgl.V(t.V[2].X, t.V[2].Y, t.V[2].Z),
		)
	}
	return fauxgl.NewTriangleMesh(triangles)
}

func fitBiUnitCube(box fauxgl.Box) fauxgl.Matrix {
	size := box.Size()
	longAxis := size.X
	if size.Y > longAxis {
		longAxis = size.Y
	}
	if size.Z > longAxis {
		longAxis = size.Z
	}
	center := box.Center()
	return fauxgl.Translate(center.Negate()).Scale(fauxgl.V(2/longAxis, 2/longAxis, 2/longAxis))
}
