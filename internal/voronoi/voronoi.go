// Package voronoi partitions a box into regions around a set of sites,
// typically the points of a poisson disk distribution. Each region is the
// area closer to its site than to any other - the usual starting point for
// turning well spread samples into terrain patches, biomes etc.
package voronoi

import (
	"image/color"
	"math"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model2d"
)

// Region is a single voronoi cell: the site it grew from & the edges
// enclosing everything nearer that site than any other.
type Region struct {
	Site  model2d.Coord
	Edges []*model2d.Segment
}

// Diagram is a full partition, one Region per site.
type Diagram []*Region

// Compute builds the voronoi regions for the given sites, all of which are
// assumed to lie inside the min/max box. Each region is the intersection of
// the box with the half planes nearer its own site than each other site.
//
// Region edges may be very slightly misaligned between neighbours due to
// rounding - see Repair.
func Compute(min, max model2d.Coord, sites []model2d.Coord) Diagram {
	regions := make(Diagram, len(sites))
	for i, s := range sites {
		constraints := model2d.NewConvexPolytopeRect(min, max)
		for _, other := range sites {
			if other == s {
				continue
			}
			mid := s.Mid(other)
			normal := other.Sub(s).Normalize()
			constraints = append(constraints, &model2d.LinearConstraint{
				Normal: normal,
				Max:    normal.Dot(mid),
			})
		}
		regions[i] = &Region{Site: s, Edges: constraints.Mesh().SegmentSlice()}
	}
	return regions
}

// Repair merges vertices closer than epsilon so that adjacent regions share
// exact coordinates & each region's edges connect end to end.
func (d Diagram) Repair(epsilon float64) {
	seen := map[model2d.Coord]bool{}
	verts := []model2d.Coord{}
	for _, r := range d {
		for _, s := range r.Edges {
			for _, p := range s {
				if !seen[p] {
					seen[p] = true
					verts = append(verts, p)
				}
			}
		}
	}
	tree := model2d.NewCoordTree(verts)

	// collapse each cluster of near-identical vertices onto one of them
	mapping := map[model2d.Coord]model2d.Coord{}
	for _, v := range verts {
		if !seen[v] {
			continue
		}
		for _, n := range withinEpsilon(tree, v, epsilon) {
			if seen[n] {
				seen[n] = false
				mapping[n] = v
			}
		}
	}

	for _, r := range d {
		starts := map[model2d.Coord]*model2d.Segment{}

		for i := 0; i < len(r.Edges); i++ {
			edge := r.Edges[i]
			for j, p := range edge {
				edge[j] = mapping[p]
			}
			if edge[0] == edge[1] {
				// collapsed to a point, drop it
				essentials.UnorderedDelete(&r.Edges, i)
				i--
			} else {
				starts[edge[0]] = edge
			}
		}

		// re-order the surviving edges into a loop
		ordered := make([]*model2d.Segment, len(r.Edges))
		ordered[0] = r.Edges[0]
		for i := 0; i < len(r.Edges)-1; i++ {
			ordered[i+1] = starts[ordered[i][1]]
		}
		r.Edges = ordered
	}
}

// Render rasterizes the diagram to fpath as an image: white background,
// sites as dots, region borders as lines.
func (d Diagram) Render(fpath string) error {
	mesh := model2d.NewMesh()
	for _, r := range d {
		mesh.AddMesh(model2d.NewMeshSegments(r.Edges))
	}
	size := mesh.Max().Sub(mesh.Min())
	maxSize := math.Max(size.X, size.Y)

	dots := model2d.JoinedSolid{}
	for _, r := range d {
		dots = append(dots, &model2d.Circle{
			Center: r.Site,
			Radius: math.Max(2, maxSize/200),
		})
	}

	bg := model2d.NewRect(mesh.Min(), mesh.Max())
	return model2d.RasterizeColor(fpath, []interface{}{
		bg,
		model2d.IntersectedSolid{dots.Optimize(), bg},
		mesh,
	}, []color.Color{
		color.Gray{Y: 0xff},
		color.RGBA{B: 0xff, A: 0xff},
		color.RGBA{R: 0xff, A: 0xff},
	}, 1.0)
}

// withinEpsilon returns all vertices in the tree within epsilon of c,
// growing a KNN query until it runs past the cutoff.
func withinEpsilon(tree *model2d.CoordTree, c model2d.Coord, epsilon float64) []model2d.Coord {
	for k := 2; true; k++ {
		neighbours := tree.KNN(k, c)
		if len(neighbours) < k {
			return neighbours
		}
		if neighbours[len(neighbours)-1].Dist(c) > epsilon {
			return neighbours[:len(neighbours)-1]
		}
	}
	panic("unreachable")
}
