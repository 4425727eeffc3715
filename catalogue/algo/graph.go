package algo

import (
	"github.com/samber/lo"
)

type node[T any] struct {
	attr T
}

// Graph 追加式节点存储 + 有向带权边
// 节点编号即在nodes中的下标，图的生命周期内保持有效
type Graph[NT any] struct {
	// 邻接表，from node -> to node -> edge length
	edges []map[int]float64
	// 节点属性
	nodes []node[NT]
}

func NewGraph[NT any]() *Graph[NT] {
	return &Graph[NT]{
		edges: make([]map[int]float64, 0),
		nodes: make([]node[NT], 0),
	}
}

func (g *Graph[NT]) InitNode(attr NT) int {
	g.nodes = append(g.nodes, node[NT]{attr: attr})
	g.edges = append(g.edges, make(map[int]float64))
	return len(g.nodes) - 1
}

func (g *Graph[NT]) Len() int {
	return len(g.nodes)
}

func (g *Graph[NT]) HasNode(id int) bool {
	return id >= 0 && id < len(g.nodes)
}

func (g *Graph[NT]) Node(id int) NT {
	if !g.HasNode(id) {
		log.Panicf("node %d out of range [0, %d)", id, len(g.nodes))
	}
	return g.nodes[id].attr
}

// InitEdge 插入或覆盖from->to的有向边
func (g *Graph[NT]) InitEdge(from, to int, length float64) {
	if !g.HasNode(from) {
		log.Panicf("from node %d >= len(g.edges) %d", from, len(g.edges))
	}
	if !g.HasNode(to) {
		log.Panicf("to node %d >= len(g.edges) %d", to, len(g.edges))
	}
	g.edges[from][to] = length
}

func (g *Graph[NT]) EdgeLength(from, to int) (float64, bool) {
	if !g.HasNode(from) || !g.HasNode(to) {
		return 0, false
	}
	length, ok := g.edges[from][to]
	return length, ok
}

// SymmetricEdgeLength 优先取from->to，不存在时退回to->from
func (g *Graph[NT]) SymmetricEdgeLength(from, to int) (float64, bool) {
	if length, ok := g.EdgeLength(from, to); ok {
		return length, true
	}
	return g.EdgeLength(to, from)
}

func (g *Graph[NT]) EdgeCount() int {
	return lo.SumBy(g.edges, func(out map[int]float64) int {
		return len(out)
	})
}
