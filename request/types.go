// Package request implements the JSON request protocol: it loads
// base_requests into a catalogue and answers stat_requests.
package request

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "request")

const (
	TYPE_STOP = "Stop"
	TYPE_BUS  = "Bus"
	TYPE_MAP  = "Map"

	NOT_FOUND = "not found"
)

// Document 一次完整的请求批次
type Document struct {
	BaseRequests []BaseRequest `json:"base_requests"`
	// 延迟解析，格式错误只影响Map请求
	RenderSettings json.RawMessage `json:"render_settings,omitempty"`
	// 逐条解析，单条格式错误只影响该条
	StatRequests []json.RawMessage `json:"stat_requests"`
}

// BaseRequest 车站或线路描述，也是MongoDB中的文档格式
type BaseRequest struct {
	Type          string         `json:"type" bson:"type" validate:"required,oneof=Stop Bus"`
	Name          string         `json:"name" bson:"name" validate:"required"`
	Latitude      float64        `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude     float64        `json:"longitude,omitempty" bson:"longitude,omitempty"`
	RoadDistances map[string]int `json:"road_distances,omitempty" bson:"road_distances,omitempty" validate:"dive,gte=0"`
	Stops         []string       `json:"stops,omitempty" bson:"stops,omitempty"`
	IsRoundtrip   bool           `json:"is_roundtrip,omitempty" bson:"is_roundtrip,omitempty"`
}

type StatRequest struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}
