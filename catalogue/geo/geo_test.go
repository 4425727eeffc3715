package geo_test

import (
	"math"
	"testing"

	"git.fiblab.net/sim/catalogue/catalogue/geo"
	"github.com/stretchr/testify/assert"
)

func TestComputeDistance(t *testing.T) {
	cases := []struct {
		name     string
		from, to geo.Coordinates
		want     float64
	}{
		{"same point", geo.Coordinates{Lat: 55, Lng: 37}, geo.Coordinates{Lat: 55, Lng: 37}, 0},
		{"one degree on equator", geo.Coordinates{Lat: 0, Lng: 0}, geo.Coordinates{Lat: 0, Lng: 1}, 111194.93},
		{"along parallel", geo.Coordinates{Lat: 55, Lng: 37}, geo.Coordinates{Lat: 55, Lng: 37.1}, 6377.88},
		{"short hop", geo.Coordinates{Lat: 55.611087, Lng: 37.20829}, geo.Coordinates{Lat: 55.595884, Lng: 37.209755}, 1693.0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.want, geo.ComputeDistance(c.from, c.to), 0.05)
		})
	}
}

func TestComputeDistanceSymmetric(t *testing.T) {
	a := geo.Coordinates{Lat: 43.587795, Lng: 39.716901}
	b := geo.Coordinates{Lat: 43.581969, Lng: 39.719848}
	assert.Equal(t, geo.ComputeDistance(a, b), geo.ComputeDistance(b, a))
	assert.Greater(t, geo.ComputeDistance(a, b), 0.0)
}

func TestComputeDistanceNearlyEqual(t *testing.T) {
	// acos参数在浮点误差下不应产生NaN
	a := geo.Coordinates{Lat: 55.0000000001, Lng: 37}
	b := geo.Coordinates{Lat: 55, Lng: 37}
	d := geo.ComputeDistance(a, b)
	assert.False(t, math.IsNaN(d))
	assert.InDelta(t, 0, d, 1)
}
