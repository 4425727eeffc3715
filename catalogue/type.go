package catalogue

import (
	"git.fiblab.net/sim/catalogue/catalogue/geo"
)

// StopID 车站在存储中的编号，catalogue生命周期内有效
type StopID int

// BusID 线路在存储中的编号
type BusID int

type RouteKind int

const (
	// 环线，按声明顺序闭合
	Ring RouteKind = iota
	// 往返线，存储时展开为 去程 + 反向回程
	Line
)

func (k RouteKind) String() string {
	switch k {
	case Ring:
		return "ring"
	case Line:
		return "line"
	default:
		return "unknown"
	}
}

type Stop struct {
	Name        string
	Coordinates geo.Coordinates
}

type Bus struct {
	Name string
	// 统计用线路类型
	Kind RouteKind
	// 绘制用线路类型，首末站相同的往返线绘制时视为环线
	DisplayKind RouteKind
	// 已展开的车站序列
	Stops []StopID
}

// BusInfo 线路统计结果
type BusInfo struct {
	Name            string
	Found           bool
	StopCount       int
	UniqueStopCount int
	RouteLength     float64
	GeoLength       float64
	Curvature       float64
}

// StopInfo 车站统计结果
type StopInfo struct {
	Name  string
	Found bool
	// 经过该站的线路名，字典序
	Buses []string
}
