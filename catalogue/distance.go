package catalogue

import (
	"fmt"

	"git.fiblab.net/sim/catalogue/catalogue/algo"
)

// DistanceIndex 车站间有向道路距离表
// 只录入正向距离，查询时正向缺失则使用反向距离
type DistanceIndex struct {
	graph *algo.Graph[Stop]
	find  func(name string) (StopID, bool)
}

// AddDistance 录入或覆盖from->to的道路距离/m
func (d *DistanceIndex) AddDistance(from, to string, meters int) error {
	fromID, ok := d.find(from)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStop, from)
	}
	toID, ok := d.find(to)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStop, to)
	}
	d.graph.InitEdge(int(fromID), int(toID), float64(meters))
	return nil
}

// Distance 查询from->to的道路距离/m，正向优先，反向回退
func (d *DistanceIndex) Distance(from, to StopID) (float64, error) {
	if !d.graph.HasNode(int(from)) {
		return 0, fmt.Errorf("%w: #%d", ErrUnknownStop, from)
	}
	if !d.graph.HasNode(int(to)) {
		return 0, fmt.Errorf("%w: #%d", ErrUnknownStop, to)
	}
	if length, ok := d.graph.SymmetricEdgeLength(int(from), int(to)); ok {
		return length, nil
	}
	return 0, fmt.Errorf("%w between %s and %s",
		ErrNoDistance, d.graph.Node(int(from)).Name, d.graph.Node(int(to)).Name)
}

func (d *DistanceIndex) DistanceCount() int {
	return d.graph.EdgeCount()
}
