package optics

import "gonum.org/v1/gonum/spatial/r2"

// MaxRays is the number of images that get a ray path.
const MaxRays = 3

// RayPaths returns a straight object-to-image path for each of the first
// MaxRays images when show is set.
//
// This is a display aid only. A real ray would bounce off the mirrors on its
// way to the eye; here the segment simply joins the object to its image.
func RayPaths(object r2.Vec, images []Image, show bool) []RayPath {
	if !show || len(images) == 0 {
		return nil
	}
	n := min(MaxRays, len(images))
	paths := make([]RayPath, 0, n)
	for _, im := range images[:n] {
		paths = append(paths, RayPath{object, im.Pos})
	}
	return paths
}
