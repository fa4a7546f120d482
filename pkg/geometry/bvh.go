package geometry

import (
	"fmt"
	"sort"

	"github.com/windlorne/luxtracer/pkg/core"
	"github.com/windlorne/luxtracer/pkg/material"
)

const maxBVHDepth = 128

// bvhBuildNode is the intermediate, pointer-based tree produced by SAH
// construction; it is discarded once flattened into a BVH's linear array.
type bvhBuildNode struct {
	box      core.AABB
	children [2]*bvhBuildNode
	surface  Surface
	isLeaf   bool
}

// bvhLinearNode is a flattened node: 48 bytes worth of AABB plus either a
// Surface reference (leaf) or an encoded second-child index (internal). The
// low bit of Child2MulTwoPlusOne is the leaf flag: even means leaf (and is
// unused/zero), odd means internal.
type bvhLinearNode struct {
	box                 core.AABB
	child2MulTwoPlusOne int
	surface             Surface
}

// BVH is the linearized bounding volume hierarchy: an iterative, allocation-
// free Surface over every primitive it was built from.
type BVH struct {
	nodes []bvhLinearNode
}

// BuildBVH constructs a BVH over surfaces for the closed time window
// [t0, t1], using each surface's BoundingBox at that window. Fails loudly
// (returns an error) if the resulting tree would exceed maxBVHDepth, per
// the build-time error policy: malformed/oversized scenes are a fatal
// construction error, never a silent degradation.
func BuildBVH(surfaces []Surface, t0, t1 float64) (*BVH, error) {
	if len(surfaces) == 0 {
		return nil, fmt.Errorf("geometry: cannot build a BVH over zero surfaces")
	}

	aabbs := make([]core.AABB, len(surfaces))
	subset := make([]int, len(surfaces))
	for i, s := range surfaces {
		aabbs[i] = s.BoundingBox(t0, t1)
		subset[i] = i
	}

	areas0 := make([]float64, len(surfaces))
	areas1 := make([]float64, len(surfaces))
	root := buildNode(surfaces, aabbs, subset, areas0, areas1, 0, len(surfaces))

	depth := measureDepth(root, 1)
	if depth > maxBVHDepth {
		return nil, fmt.Errorf("geometry: BVH depth %d exceeds maximum %d", depth, maxBVHDepth)
	}

	nodeCount := countNodes(root)
	nodes := make([]bvhLinearNode, nodeCount)
	offset := 0
	flattenBVH(root, nodes, &offset)

	return &BVH{nodes: nodes}, nil
}

// buildNode recursively partitions subset[I:I+N] by the SAH cost function:
// sort along the parent box's longest axis, build prefix/suffix surface-area
// arrays, and pick the split minimizing cost(k) = k*area0[k-1] + (N-k)*area1[k].
func buildNode(surfaces []Surface, aabbs []core.AABB, subset []int, areas0, areas1 []float64, I, N int) *bvhBuildNode {
	if N == 1 {
		return &bvhBuildNode{box: aabbs[subset[I]], surface: surfaces[subset[I]], isLeaf: true}
	}

	box := aabbs[subset[I]]
	for i := 1; i < N; i++ {
		box = box.Union(aabbs[subset[I+i]])
	}
	axis := box.LongestAxis()

	sort.Slice(subset[I:I+N], func(a, b int) bool {
		ca := centroid(aabbs[subset[I+a]], axis)
		cb := centroid(aabbs[subset[I+b]], axis)
		return ca < cb
	})

	box0 := aabbs[subset[I]]
	areas0[I] = box0.SurfaceArea()
	for i := 1; i < N-1; i++ {
		box0 = box0.Union(aabbs[subset[I+i]])
		areas0[I+i] = box0.SurfaceArea()
	}

	box1 := aabbs[subset[I+N-1]]
	areas1[I+N-1] = box1.SurfaceArea()
	for i := N - 2; i > 0; i-- {
		box1 = box1.Union(aabbs[subset[I+i]])
		areas1[I+i] = box1.SurfaceArea()
	}

	splitIndex := 1
	minSAH := sahCost(areas0, areas1, I, N, 1)
	for i := 2; i < N; i++ {
		cost := sahCost(areas0, areas1, I, N, i)
		if cost < minSAH {
			minSAH = cost
			splitIndex = i
		}
	}

	left := buildNode(surfaces, aabbs, subset, areas0, areas1, I, splitIndex)
	right := buildNode(surfaces, aabbs, subset, areas0, areas1, I+splitIndex, N-splitIndex)

	return &bvhBuildNode{box: box, children: [2]*bvhBuildNode{left, right}, isLeaf: false}
}

func centroid(box core.AABB, axis int) float64 {
	switch axis {
	case 0:
		return box.Center().X
	case 1:
		return box.Center().Y
	default:
		return box.Center().Z
	}
}

func sahCost(areas0, areas1 []float64, offset, n, i int) float64 {
	return float64(i)*areas0[offset+i-1] + float64(n-i)*areas1[offset+i]
}

func measureDepth(node *bvhBuildNode, depth int) int {
	if node.isLeaf {
		return depth
	}
	return max(measureDepth(node.children[0], depth+1), measureDepth(node.children[1], depth+1))
}

func countNodes(node *bvhBuildNode) int {
	if node.isLeaf {
		return 1
	}
	return 1 + countNodes(node.children[0]) + countNodes(node.children[1])
}

func flattenBVH(node *bvhBuildNode, nodes []bvhLinearNode, offset *int) int {
	myOffset := *offset
	*offset++
	nodes[myOffset].box = node.box
	if node.isLeaf {
		nodes[myOffset].surface = node.surface
		return myOffset
	}
	flattenBVH(node.children[0], nodes, offset)
	child2 := flattenBVH(node.children[1], nodes, offset)
	nodes[myOffset].child2MulTwoPlusOne = child2*2 + 1
	return myOffset
}

// BoundingBox implements Surface: the root node's AABB bounds everything.
func (b *BVH) BoundingBox(t0, t1 float64) core.AABB {
	return b.nodes[0].box
}

// Hit implements Surface via iterative traversal with a fixed-capacity
// stack: test the slab, on a leaf intersect and tighten tMax, on an
// internal node push child 2 and descend directly into child 1.
func (b *BVH) Hit(ray core.Ray, tMin, tMax float64) (material.SurfaceInteraction, bool) {
	var best material.SurfaceInteraction
	haveHit := false

	var nodesToVisit [maxBVHDepth]int
	toVisit := 0
	current := 0

	for {
		node := &b.nodes[current]
		if node.box.Hit(ray, tMin, tMax) {
			if node.child2MulTwoPlusOne%2 == 0 {
				if si, ok := node.surface.Hit(ray, tMin, tMax); ok {
					best = si
					tMax = si.T
					haveHit = true
				}
				if toVisit == 0 {
					break
				}
				toVisit--
				current = nodesToVisit[toVisit]
			} else {
				nodesToVisit[toVisit] = node.child2MulTwoPlusOne / 2
				toVisit++
				current++
			}
		} else {
			if toVisit == 0 {
				break
			}
			toVisit--
			current = nodesToVisit[toVisit]
		}
	}

	return best, haveHit
}

// leafCount reports how many leaves the tree has, used by tests to check
// that every leaf holds exactly one surface.
func (b *BVH) leafCount() int {
	n := 0
	for _, node := range b.nodes {
		if node.child2MulTwoPlusOne%2 == 0 {
			n++
		}
	}
	return n
}
