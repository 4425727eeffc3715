package renderer

import (
	"io"
	"sort"

	"git.fiblab.net/sim/catalogue/catalogue"
	"git.fiblab.net/sim/catalogue/catalogue/geo"
	"git.fiblab.net/sim/catalogue/renderer/svg"
	"github.com/samber/lo"
)

// Catalogue 绘制所需的只读数据源
type Catalogue interface {
	Buses() []catalogue.Bus
	Stop(id catalogue.StopID) catalogue.Stop
}

// Drawable 可绘制到SVG容器的地图元素
type Drawable interface {
	Draw(container svg.ObjectContainer)
}

// Layer 同一图层内的元素按顺序绘制
type Layer []Drawable

type MapRenderer struct {
	settings Settings
}

func New(settings Settings) *MapRenderer {
	return &MapRenderer{settings: settings}
}

// Layers 构造四个图层，依次为：线路折线、线路名、车站圆点、车站名
func (r *MapRenderer) Layers(cat Catalogue) []Layer {
	buses := lo.Filter(cat.Buses(), func(bus catalogue.Bus, _ int) bool {
		return len(bus.Stops) > 0
	})
	// 线路经过的所有车站，按名称排序
	stops := lo.Map(
		lo.Uniq(lo.FlatMap(buses, func(bus catalogue.Bus, _ int) []catalogue.StopID { return bus.Stops })),
		func(id catalogue.StopID, _ int) catalogue.Stop { return cat.Stop(id) },
	)
	sort.Slice(stops, func(i, j int) bool {
		return stops[i].Name < stops[j].Name
	})
	projector := NewSphereProjector(
		lo.Map(stops, func(s catalogue.Stop, _ int) geo.Coordinates { return s.Coordinates }),
		r.settings.Width, r.settings.Height, r.settings.Padding,
	)

	lines := make(Layer, 0, len(buses))
	busLabels := make(Layer, 0, 2*len(buses))
	for i, bus := range buses {
		color := r.settings.paletteColor(i)
		points := lo.Map(bus.Stops, func(id catalogue.StopID, _ int) svg.Point {
			return projector.Project(cat.Stop(id).Coordinates)
		})
		lines = append(lines, &routeLine{points: points, color: color, settings: &r.settings})
		if len(points) <= 1 {
			continue
		}
		busLabels = append(busLabels, &busLabel{position: points[0], name: bus.Name, color: color, settings: &r.settings})
		if bus.DisplayKind == catalogue.Line {
			// 往返线在折返站再标注一次
			mid := int(float64(len(points))/2 - 0.5)
			busLabels = append(busLabels, &busLabel{position: points[mid], name: bus.Name, color: color, settings: &r.settings})
		}
	}

	markers := make(Layer, 0, len(stops))
	stopLabels := make(Layer, 0, len(stops))
	for _, stop := range stops {
		position := projector.Project(stop.Coordinates)
		markers = append(markers, &stopMarker{center: position, settings: &r.settings})
		stopLabels = append(stopLabels, &stopLabel{position: position, name: stop.Name, settings: &r.settings})
	}
	log.Debugf("map layers: %d routes, %d bus labels, %d stops", len(lines), len(busLabels), len(markers))
	return []Layer{lines, busLabels, markers, stopLabels}
}

// Render 绘制整张地图
func (r *MapRenderer) Render(cat Catalogue) *svg.Document {
	doc := svg.NewDocument()
	for _, layer := range r.Layers(cat) {
		for _, item := range layer {
			item.Draw(doc)
		}
	}
	return doc
}

func (r *MapRenderer) RenderTo(w io.Writer, cat Catalogue) error {
	return r.Render(cat).Render(w)
}
