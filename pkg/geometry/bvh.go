package geometry

import (
	"errors"
	"math/rand"
	"sort"

	"github.com/df07/go-block-pathtracer/pkg/core"
	"github.com/df07/go-block-pathtracer/pkg/material"
)

// ErrEmptyBVH is returned when a BVH is built from no shapes
var ErrEmptyBVH = errors.New("bvh: cannot build from an empty shape list")

// BVHNode represents a node in the Bounding Volume Hierarchy.
// Leaves hold exactly one shape; internal nodes hold two children.
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Shape       Shape // Non-nil only for leaf nodes
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// It is immutable once built and safe for concurrent queries.
type BVH struct {
	Root         *BVHNode
	Time0, Time1 float64 // Interval every node box is valid over
}

// NewBVH constructs a BVH over shapes for the interval [time0, time1].
// The slice is reordered in place. Each split picks an axis from random.
func NewBVH(shapes []Shape, time0, time1 float64, random *rand.Rand) (*BVH, error) {
	if len(shapes) == 0 {
		return nil, ErrEmptyBVH
	}

	return &BVH{
		Root:  buildBVH(shapes, time0, time1, random),
		Time0: time0,
		Time1: time1,
	}, nil
}

// buildBVH recursively sorts along a random axis and splits at the midpoint index
func buildBVH(shapes []Shape, time0, time1 float64, random *rand.Rand) *BVHNode {
	if len(shapes) == 1 {
		return &BVHNode{
			BoundingBox: shapes[0].BoundingBox(time0, time1),
			Shape:       shapes[0],
		}
	}

	axis := random.Intn(3)

	var left, right *BVHNode
	if len(shapes) == 2 {
		first, second := shapes[0], shapes[1]
		if boxMin(second, axis, time0, time1) < boxMin(first, axis, time0, time1) {
			first, second = second, first
		}
		left = buildBVH([]Shape{first}, time0, time1, random)
		right = buildBVH([]Shape{second}, time0, time1, random)
	} else {
		sortShapesByAxis(shapes, axis, time0, time1)
		mid := len(shapes) / 2
		left = buildBVH(shapes[:mid], time0, time1, random)
		right = buildBVH(shapes[mid:], time0, time1, random)
	}

	return &BVHNode{
		BoundingBox: left.BoundingBox.Union(right.BoundingBox),
		Left:        left,
		Right:       right,
	}
}

// boxMin returns the minimum coordinate of a shape's box along axis
func boxMin(shape Shape, axis int, time0, time1 float64) float64 {
	return shape.BoundingBox(time0, time1).Min.Axis(axis)
}

// sortShapesByAxis sorts shapes by their bounding box minimum along the specified axis
func sortShapesByAxis(shapes []Shape, axis int, time0, time1 float64) {
	sort.SliceStable(shapes, func(i, j int) bool {
		return boxMin(shapes[i], axis, time0, time1) < boxMin(shapes[j], axis, time0, time1)
	})
}

// Hit returns the nearest intersection with any shape in the BVH
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return bvh.Root.hit(ray, tMin, tMax)
}

// hit queries the left child first, then the right child with tMax
// tightened to the left hit, so a right hit is always the nearer one
func (node *BVHNode) hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if node.Shape != nil {
		return node.Shape.Hit(ray, tMin, tMax)
	}

	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return nil, false
	}

	leftHit, hitLeft := node.Left.hit(ray, tMin, tMax)
	if hitLeft {
		tMax = leftHit.T
	}

	if rightHit, hitRight := node.Right.hit(ray, tMin, tMax); hitRight {
		return rightHit, true
	}
	return leftHit, hitLeft
}

// BoundingBox implements the Shape interface. The root box is valid over
// the build interval regardless of the interval requested.
func (bvh *BVH) BoundingBox(time0, time1 float64) core.AABB {
	if bvh.Root == nil {
		return core.AABB{}
	}
	return bvh.Root.BoundingBox
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes int
	LeafNodes  int
	MaxDepth   int
	AvgDepth   float64 // Mean leaf depth
}

// Stats walks the tree and returns its shape statistics
func (bvh *BVH) Stats() BVHStats {
	if bvh.Root == nil {
		return BVHStats{}
	}

	stats := BVHStats{}
	collectStats(bvh.Root, 0, &stats)

	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}

	return stats
}

// collectStats recursively collects statistics about the BVH
func collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.TotalNodes++
	stats.MaxDepth = max(stats.MaxDepth, depth)

	if node.Shape != nil {
		stats.LeafNodes++
		stats.AvgDepth += float64(depth) // divided by leaf count in Stats
		return
	}

	collectStats(node.Left, depth+1, stats)
	collectStats(node.Right, depth+1, stats)
}
