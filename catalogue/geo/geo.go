// Package geo provides great-circle distances between geographic coordinates.
package geo

import (
	"math"

	"github.com/samber/lo"
)

const (
	// 地球半径/m
	EARTH_RADIUS = 6371000.0
	// 角度转弧度
	DEG_TO_RAD = math.Pi / 180
)

type Coordinates struct {
	Lat float64
	Lng float64
}

// ComputeDistance 球面余弦公式计算两点间大圆距离/m
func ComputeDistance(from, to Coordinates) float64 {
	if from == to {
		return 0
	}
	cos := math.Sin(from.Lat*DEG_TO_RAD)*math.Sin(to.Lat*DEG_TO_RAD) +
		math.Cos(from.Lat*DEG_TO_RAD)*math.Cos(to.Lat*DEG_TO_RAD)*math.Cos(math.Abs(from.Lng-to.Lng)*DEG_TO_RAD)
	// 浮点误差可能使cos略超出[-1, 1]
	return math.Acos(lo.Clamp(cos, -1, 1)) * EARTH_RADIUS
}
