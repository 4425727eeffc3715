package renderer_test

import (
	"testing"

	"git.fiblab.net/sim/catalogue/catalogue/geo"
	"git.fiblab.net/sim/catalogue/renderer"
	"git.fiblab.net/sim/catalogue/renderer/svg"
	"github.com/stretchr/testify/assert"
)

func TestSphereProjector(t *testing.T) {
	points := []geo.Coordinates{{Lat: 55, Lng: 37}, {Lat: 55.1, Lng: 37.2}}
	p := renderer.NewSphereProjector(points, 200, 100, 10)
	// 宽度方向 180/0.2=900，高度方向 80/0.1=800，取较小值
	assert.InDelta(t, 800, p.Zoom(), 1e-6)

	sw := p.Project(geo.Coordinates{Lat: 55, Lng: 37})
	assert.InDelta(t, 10, sw.X, 1e-6)
	assert.InDelta(t, 90, sw.Y, 1e-6)
	ne := p.Project(geo.Coordinates{Lat: 55.1, Lng: 37.2})
	assert.InDelta(t, 170, ne.X, 1e-6)
	assert.InDelta(t, 10, ne.Y, 1e-6)
}

func TestSphereProjectorSingleAxis(t *testing.T) {
	// 纬度相同，只由经度约束
	p := renderer.NewSphereProjector([]geo.Coordinates{{Lat: 55, Lng: 37}, {Lat: 55, Lng: 37.2}}, 200, 100, 10)
	assert.InDelta(t, 900, p.Zoom(), 1e-6)

	// 经度相同，只由纬度约束
	p = renderer.NewSphereProjector([]geo.Coordinates{{Lat: 55, Lng: 37}, {Lat: 55.1, Lng: 37}}, 200, 100, 10)
	assert.InDelta(t, 800, p.Zoom(), 1e-6)
}

func TestSphereProjectorDegenerate(t *testing.T) {
	p := renderer.NewSphereProjector([]geo.Coordinates{{Lat: 55, Lng: 37}, {Lat: 55, Lng: 37}}, 200, 100, 10)
	assert.Equal(t, 0.0, p.Zoom())
	assert.Equal(t, svg.Point{X: 10, Y: 10}, p.Project(geo.Coordinates{Lat: 55, Lng: 37}))

	p = renderer.NewSphereProjector(nil, 200, 100, 30)
	assert.Equal(t, 0.0, p.Zoom())
	assert.Equal(t, svg.Point{X: 30, Y: 30}, p.Project(geo.Coordinates{Lat: 1, Lng: 2}))
}
