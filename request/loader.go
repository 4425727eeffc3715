package request

import (
	"errors"
	"fmt"
	"sort"

	"git.fiblab.net/sim/catalogue/catalogue"
	"git.fiblab.net/sim/catalogue/catalogue/geo"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

// Load 按 车站 -> 道路距离 -> 线路 的顺序构建catalogue
// 条目格式错误则整体失败，不返回部分数据
// 指向未知车站的道路距离、没有车站的线路不录入，仅记录警告
func Load(reqs []BaseRequest) (*catalogue.Catalogue, error) {
	for i := range reqs {
		if err := validate.Struct(reqs[i]); err != nil {
			return nil, fmt.Errorf("base request #%d: %w", i, err)
		}
	}
	stops := lo.Filter(reqs, func(r BaseRequest, _ int) bool { return r.Type == TYPE_STOP })
	buses := lo.Filter(reqs, func(r BaseRequest, _ int) bool { return r.Type == TYPE_BUS })

	c := catalogue.New()
	for _, r := range stops {
		if _, err := c.AddStop(catalogue.Stop{
			Name:        r.Name,
			Coordinates: geo.Coordinates{Lat: r.Latitude, Lng: r.Longitude},
		}); err != nil {
			return nil, err
		}
	}
	for _, r := range stops {
		// map遍历无序，排序保证覆盖顺序确定
		to := lo.Keys(r.RoadDistances)
		sort.Strings(to)
		for _, name := range to {
			if err := c.AddDistance(r.Name, name, r.RoadDistances[name]); err != nil {
				if errors.Is(err, catalogue.ErrUnknownStop) {
					log.Warnf("road distance from %s skipped: %v", r.Name, err)
					continue
				}
				return nil, fmt.Errorf("road distance from %s: %w", r.Name, err)
			}
		}
	}
	for _, r := range buses {
		if len(r.Stops) == 0 {
			log.Warnf("bus %s skipped: %v", r.Name, catalogue.ErrEmptyRoute)
			continue
		}
		ids, err := c.ResolveStops(r.Stops)
		if err != nil {
			return nil, fmt.Errorf("bus %s: %w", r.Name, err)
		}
		kind := catalogue.Line
		if r.IsRoundtrip {
			kind = catalogue.Ring
		}
		if _, err := c.AddBus(catalogue.NewBus(r.Name, ids, kind)); err != nil {
			return nil, err
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	log.Debugf("loaded %d stops, %d road distances, %d buses", c.StopCount(), c.DistanceCount(), c.BusCount())
	return c, nil
}
