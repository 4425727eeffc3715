package catalogue

import (
	"errors"
	"fmt"
	"sort"

	"git.fiblab.net/sim/catalogue/catalogue/geo"
	"github.com/samber/lo"
)

// GetBusInfo 计算线路统计信息
// 线路不存在时返回Found=false且不报错
func (c *Catalogue) GetBusInfo(name string) (BusInfo, error) {
	info := BusInfo{Name: name}
	id, ok := c.FindBus(name)
	if !ok {
		return info, nil
	}
	bus := c.buses[id]
	info.Found = true
	info.StopCount = len(bus.Stops)
	info.UniqueStopCount = len(lo.Uniq(bus.Stops))
	for i := 1; i < len(bus.Stops); i++ {
		from, to := bus.Stops[i-1], bus.Stops[i]
		length, err := c.Distance(from, to)
		if err != nil {
			return info, err
		}
		info.RouteLength += length
		info.GeoLength += geo.ComputeDistance(c.Stop(from).Coordinates, c.Stop(to).Coordinates)
	}
	if info.GeoLength == 0 {
		return info, ErrDegenerateGeometry
	}
	info.Curvature = info.RouteLength / info.GeoLength
	return info, nil
}

// GetStopInfo 查询经过车站的所有线路
func (c *Catalogue) GetStopInfo(name string) StopInfo {
	info := StopInfo{Name: name}
	id, ok := c.FindStop(name)
	if !ok {
		return info
	}
	info.Found = true
	info.Buses = lo.Map(lo.Keys(c.stopBuses[id]), func(bus BusID, _ int) string {
		return c.buses[bus].Name
	})
	sort.Strings(info.Buses)
	return info
}

// Validate 检查所有线路相邻车站之间都有道路距离
func (c *Catalogue) Validate() error {
	type pair struct{ from, to StopID }
	seen := make(map[pair]struct{})
	var errs []error
	for _, bus := range c.buses {
		for i := 1; i < len(bus.Stops); i++ {
			p := pair{bus.Stops[i-1], bus.Stops[i]}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			if _, err := c.Distance(p.from, p.to); err != nil {
				errs = append(errs, fmt.Errorf("bus %s: %w", bus.Name, err))
			}
		}
	}
	if len(errs) > 0 {
		log.Warnf("%d traversed stop pairs without road distance", len(errs))
	}
	return errors.Join(errs...)
}
