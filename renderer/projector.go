package renderer

import (
	"math"

	"git.fiblab.net/sim/catalogue/catalogue/geo"
	"git.fiblab.net/sim/catalogue/renderer/svg"
	"github.com/samber/lo"
)

const EPSILON = 1e-6

func isZero(v float64) bool {
	return math.Abs(v) < EPSILON
}

// SphereProjector 将经纬度等比例映射到画布坐标，纬度轴向下翻转
type SphereProjector struct {
	padding float64
	minLng  float64
	maxLat  float64
	zoom    float64
}

func NewSphereProjector(points []geo.Coordinates, width, height, padding float64) SphereProjector {
	p := SphereProjector{padding: padding}
	if len(points) == 0 {
		return p
	}
	lngs := lo.Map(points, func(c geo.Coordinates, _ int) float64 { return c.Lng })
	lats := lo.Map(points, func(c geo.Coordinates, _ int) float64 { return c.Lat })
	p.minLng = lo.Min(lngs)
	p.maxLat = lo.Max(lats)
	maxLng, minLat := lo.Max(lngs), lo.Min(lats)

	// 某一维度跨度为0时该维度不约束缩放
	zooms := make([]float64, 0, 2)
	if !isZero(maxLng - p.minLng) {
		zooms = append(zooms, (width-2*padding)/(maxLng-p.minLng))
	}
	if !isZero(p.maxLat - minLat) {
		zooms = append(zooms, (height-2*padding)/(p.maxLat-minLat))
	}
	if len(zooms) > 0 {
		p.zoom = lo.Min(zooms)
	}
	return p
}

func (p SphereProjector) Project(c geo.Coordinates) svg.Point {
	return svg.Point{
		X: (c.Lng-p.minLng)*p.zoom + p.padding,
		Y: (p.maxLat-c.Lat)*p.zoom + p.padding,
	}
}

func (p SphereProjector) Zoom() float64 {
	return p.zoom
}
