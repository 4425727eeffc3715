package request_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"git.fiblab.net/sim/catalogue/catalogue"
	"git.fiblab.net/sim/catalogue/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseRequests = `[
	{"type": "Bus", "name": "114", "stops": ["Морской вокзал", "Ривьерский мост"], "is_roundtrip": false},
	{"type": "Stop", "name": "Ривьерский мост", "latitude": 43.587795, "longitude": 39.716901,
	 "road_distances": {"Морской вокзал": 850}},
	{"type": "Stop", "name": "Морской вокзал", "latitude": 43.581969, "longitude": 39.719848,
	 "road_distances": {"Ривьерский мост": 850}},
	{"type": "Bus", "name": "14", "stops": ["Морской вокзал", "Ривьерский мост", "Морской вокзал"], "is_roundtrip": true}
]`

func decode(t *testing.T, statRequests string) request.Document {
	doc, err := request.Decode(strings.NewReader(`{
		"base_requests": ` + baseRequests + `,
		"render_settings": ` + renderSettings + `,
		"stat_requests": ` + statRequests + `
	}`))
	require.NoError(t, err)
	return doc
}

// roundTrip 经过一次编码，得到与实际输出一致的结构
func roundTrip(t *testing.T, v any) []map[string]any {
	var buf bytes.Buffer
	require.NoError(t, request.Encode(&buf, v))
	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestProcess(t *testing.T) {
	doc := decode(t, `[
		{"id": 1, "type": "Stop", "name": "Ривьерский мост"},
		{"id": 2, "type": "Bus", "name": "114"},
		{"id": 3, "type": "Bus", "name": "751"},
		{"id": 4, "type": "Stop", "name": "Z"},
		{"id": 5, "type": "Map"}
	]`)
	v, err := request.Process(doc)
	require.NoError(t, err)
	out := roundTrip(t, v)
	require.Len(t, out, 5)

	assert.Equal(t, map[string]any{"request_id": 1.0, "buses": []any{"114", "14"}}, out[0])

	assert.Equal(t, 2.0, out[1]["request_id"])
	assert.Equal(t, 1700.0, out[1]["route_length"])
	assert.Equal(t, 3.0, out[1]["stop_count"])
	assert.Equal(t, 2.0, out[1]["unique_stop_count"])
	assert.InDelta(t, 1.23199, out[1]["curvature"], 1e-5)

	assert.Equal(t, map[string]any{"request_id": 3.0, "error_message": "not found"}, out[2])
	assert.Equal(t, map[string]any{"request_id": 4.0, "error_message": "not found"}, out[3])

	svg, ok := out[4]["map"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(svg, `<?xml version="1.0" encoding="UTF-8" ?>`))
	assert.Equal(t, 2, strings.Count(svg, "<polyline"))
	assert.Contains(t, svg, `stroke="green"`)
	assert.Contains(t, svg, `stroke="rgb(255,160,0)"`)
}

func TestProcessDegradesPerRequest(t *testing.T) {
	doc := decode(t, `[
		{"id": 1, "type": "Bus", "name": 114},
		{"id": 2, "type": "Route", "name": "114"},
		{"id": 3, "type": "Stop", "name": "Морской вокзал"}
	]`)
	v, err := request.Process(doc)
	require.NoError(t, err)
	out := roundTrip(t, v)
	require.Len(t, out, 3)
	assert.Equal(t, 1.0, out[0]["request_id"])
	assert.Contains(t, out[0]["error_message"], "malformed request")
	assert.Equal(t, 2.0, out[1]["request_id"])
	assert.Contains(t, out[1]["error_message"], "unknown request type")
	assert.Equal(t, []any{"114", "14"}, out[2]["buses"])
}

func TestProcessBadRenderSettings(t *testing.T) {
	doc := decode(t, `[{"id": 1, "type": "Map"}, {"id": 2, "type": "Bus", "name": "14"}, {"id": 3, "type": "Map"}]`)
	doc.RenderSettings = json.RawMessage(`{"width": 100, "height": 100, "padding": 10, "underlayer_color": "white", "color_palette": []}`)
	v, err := request.Process(doc)
	require.NoError(t, err)
	out := roundTrip(t, v)
	require.Len(t, out, 3)
	assert.Contains(t, out[0]["error_message"], "invalid render settings")
	assert.Equal(t, 1700.0, out[1]["route_length"])
	assert.Equal(t, out[0]["error_message"], out[2]["error_message"])
}

func TestProcessMapDeterministic(t *testing.T) {
	doc := decode(t, `[{"id": 1, "type": "Map"}, {"id": 2, "type": "Map"}]`)
	v, err := request.Process(doc)
	require.NoError(t, err)
	out := roundTrip(t, v)
	assert.Equal(t, out[0]["map"], out[1]["map"])

	v, err = request.Process(doc)
	require.NoError(t, err)
	assert.Equal(t, out[0]["map"], roundTrip(t, v)[0]["map"])
}

func TestLoad(t *testing.T) {
	var reqs []request.BaseRequest
	require.NoError(t, json.Unmarshal([]byte(baseRequests), &reqs))
	c, err := request.Load(reqs)
	require.NoError(t, err)
	assert.Equal(t, 2, c.StopCount())
	assert.Equal(t, 2, c.BusCount())

	id, ok := c.FindBus("114")
	require.True(t, ok)
	bus := c.Bus(id)
	assert.Equal(t, catalogue.Line, bus.Kind)
	assert.Len(t, bus.Stops, 3)

	id, _ = c.FindBus("14")
	assert.Equal(t, catalogue.Ring, c.Bus(id).Kind)
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		reqs []request.BaseRequest
		want string
	}{
		{"unknown type", []request.BaseRequest{{Type: "Tram", Name: "T1"}}, "base request #0"},
		{"missing name", []request.BaseRequest{{Type: "Stop"}}, "base request #0"},
		{"unknown stop in bus", []request.BaseRequest{
			{Type: "Stop", Name: "A"},
			{Type: "Bus", Name: "1", Stops: []string{"A", "B"}},
		}, "bus 1: unknown stop: B"},
		{"duplicate stop", []request.BaseRequest{
			{Type: "Stop", Name: "A"},
			{Type: "Stop", Name: "A"},
		}, "stop already exists"},
		{"missing distance", []request.BaseRequest{
			{Type: "Stop", Name: "A"},
			{Type: "Stop", Name: "B", Latitude: 1},
			{Type: "Bus", Name: "1", Stops: []string{"A", "B"}},
		}, "no distance recorded"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := request.Load(c.reqs)
			assert.ErrorContains(t, err, c.want)
		})
	}

	_, err := request.Process(request.Document{BaseRequests: []request.BaseRequest{{Type: "Tram", Name: "T"}}})
	assert.ErrorContains(t, err, "load base requests")
}

func TestLoadSkipsDanglingEntries(t *testing.T) {
	// 指向未声明车站的道路距离、空线路都不影响其余数据
	c, err := request.Load([]request.BaseRequest{
		{Type: "Stop", Name: "A", Latitude: 55, Longitude: 37, RoadDistances: map[string]int{"B": 1000, "Ghost": 5}},
		{Type: "Stop", Name: "B", Latitude: 55, Longitude: 37.1},
		{Type: "Bus", Name: "1", Stops: []string{"A", "B"}},
		{Type: "Bus", Name: "empty", IsRoundtrip: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, c.DistanceCount())
	assert.Equal(t, 1, c.BusCount())
	_, ok := c.FindBus("empty")
	assert.False(t, ok)

	info, err := c.GetBusInfo("1")
	require.NoError(t, err)
	assert.Equal(t, 2000.0, info.RouteLength)
}

func TestProcessWithDanglingDistance(t *testing.T) {
	doc, err := request.Decode(strings.NewReader(`{
		"base_requests": [
			{"type": "Stop", "name": "A", "latitude": 55.0, "longitude": 37.0, "road_distances": {"B": 1000, "Ghost": 5}},
			{"type": "Stop", "name": "B", "latitude": 55.0, "longitude": 37.1},
			{"type": "Bus", "name": "1", "stops": ["A", "B"], "is_roundtrip": false},
			{"type": "Bus", "name": "2", "stops": [], "is_roundtrip": true}
		],
		"stat_requests": [
			{"id": 1, "type": "Bus", "name": "1"},
			{"id": 2, "type": "Stop", "name": "Z"},
			{"id": 3, "type": "Bus", "name": "2"}
		]
	}`))
	require.NoError(t, err)
	v, err := request.Process(doc)
	require.NoError(t, err)
	out := roundTrip(t, v)
	require.Len(t, out, 3)
	assert.Equal(t, 2000.0, out[0]["route_length"])
	assert.Equal(t, map[string]any{"request_id": 2.0, "error_message": "not found"}, out[1])
	assert.Equal(t, map[string]any{"request_id": 3.0, "error_message": "not found"}, out[2])
}

func TestEncodeKeepsSVGReadable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, request.Encode(&buf, map[string]any{"map": `<svg a="b"/>`}))
	assert.Contains(t, buf.String(), `"map": "<svg a=\"b\"/>"`)
}
