package catalogue

import (
	"slices"

	"github.com/samber/lo"
)

// NewBus 按线路类型构造待录入的线路
// 1. 环线按原样保存
// 2. 往返线展开为 A B C B A；首末站相同时不展开，且绘制时视为环线
func NewBus(name string, stops []StopID, kind RouteKind) Bus {
	bus := Bus{
		Name:        name,
		Kind:        kind,
		DisplayKind: kind,
		Stops:       slices.Clone(stops),
	}
	if kind != Line || len(stops) == 0 {
		return bus
	}
	if stops[0] == stops[len(stops)-1] {
		bus.DisplayKind = Ring
		return bus
	}
	back := lo.Reverse(slices.Clone(stops[:len(stops)-1]))
	bus.Stops = append(bus.Stops, back...)
	return bus
}
