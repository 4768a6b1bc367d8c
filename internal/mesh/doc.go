// Package mesh reads the element files of openCARP text meshes and derives
// the region tag sets the solver needs to attach physics to a mesh.
//
// Only the `.elem` file is understood here. Point coordinates and fibre
// files are consumed by the solver directly and never parsed by the driver.
package mesh
