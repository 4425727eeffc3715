package catalogue

import (
	"fmt"
	"slices"
	"sort"

	"git.fiblab.net/sim/catalogue/catalogue/algo"
)

type Catalogue struct {
	// 车站与道路距离
	//
	//   [A]--1000m-->[B]
	//    ^            |
	//    +----800m----+
	//
	// 1. 图中的点为车站，点编号即StopID
	// 2. 图中的边为录入的有向道路距离，查询时反向回退见DistanceIndex
	*DistanceIndex

	stops *algo.Graph[Stop]
	buses []Bus

	stopIndex map[string]StopID
	busIndex  map[string]BusID
	// 车站 -> 经过的线路集合
	stopBuses map[StopID]map[BusID]struct{}
}

func New() *Catalogue {
	c := &Catalogue{
		stops:     algo.NewGraph[Stop](),
		buses:     make([]Bus, 0),
		stopIndex: make(map[string]StopID),
		busIndex:  make(map[string]BusID),
		stopBuses: make(map[StopID]map[BusID]struct{}),
	}
	c.DistanceIndex = &DistanceIndex{graph: c.stops, find: c.FindStop}
	return c
}

func (c *Catalogue) AddStop(stop Stop) (StopID, error) {
	if _, ok := c.stopIndex[stop.Name]; ok {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateStop, stop.Name)
	}
	id := StopID(c.stops.InitNode(stop))
	c.stopIndex[stop.Name] = id
	return id, nil
}

// AddBus 录入已解析、展开、分类的线路（见NewBus）
func (c *Catalogue) AddBus(bus Bus) (BusID, error) {
	if _, ok := c.busIndex[bus.Name]; ok {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateBus, bus.Name)
	}
	if len(bus.Stops) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrEmptyRoute, bus.Name)
	}
	for _, stop := range bus.Stops {
		if !c.stops.HasNode(int(stop)) {
			return 0, fmt.Errorf("%w: bus %s references stop #%d", ErrUnknownStop, bus.Name, stop)
		}
	}
	id := BusID(len(c.buses))
	c.buses = append(c.buses, bus)
	c.busIndex[bus.Name] = id
	for _, stop := range bus.Stops {
		if _, ok := c.stopBuses[stop]; !ok {
			c.stopBuses[stop] = make(map[BusID]struct{})
		}
		c.stopBuses[stop][id] = struct{}{}
	}
	return id, nil
}

func (c *Catalogue) FindStop(name string) (StopID, bool) {
	id, ok := c.stopIndex[name]
	return id, ok
}

func (c *Catalogue) FindBus(name string) (BusID, bool) {
	id, ok := c.busIndex[name]
	return id, ok
}

func (c *Catalogue) Stop(id StopID) Stop {
	return c.stops.Node(int(id))
}

func (c *Catalogue) Bus(id BusID) Bus {
	if id < 0 || int(id) >= len(c.buses) {
		log.Panicf("bus %d out of range [0, %d)", id, len(c.buses))
	}
	return c.buses[id]
}

func (c *Catalogue) StopCount() int {
	return c.stops.Len()
}

func (c *Catalogue) BusCount() int {
	return len(c.buses)
}

// Buses 所有线路，按名称升序
func (c *Catalogue) Buses() []Bus {
	buses := slices.Clone(c.buses)
	sort.Slice(buses, func(i, j int) bool {
		return buses[i].Name < buses[j].Name
	})
	return buses
}

// ResolveStops 将车站名序列转换为StopID序列
func (c *Catalogue) ResolveStops(names []string) ([]StopID, error) {
	ids := make([]StopID, 0, len(names))
	for _, name := range names {
		id, ok := c.FindStop(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownStop, name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
