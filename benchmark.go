package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"git.fiblab.net/sim/catalogue/catalogue/geo"
	"git.fiblab.net/sim/catalogue/request"
	"github.com/sirupsen/logrus"
)

var (
	benchmarkCount = flag.Int("benchmark.count", 100, "the random request document count for benchmark")
	benchmarkStops = flag.Int("benchmark.stops", 1000, "the stop count of each random document")
	benchmarkBuses = flag.Int("benchmark.buses", 100, "the bus count of each random document")
	benchmarkSeed  = flag.Int64("benchmark.seed", 0, "the seed for benchmark")
	benchmarkCPU   = flag.Int("benchmark.cpu", 1, "the cpu count for benchmark")
)

const (
	// 道路距离相对大圆距离的放大系数
	ROAD_FACTOR = 1.3
	// 每条线路的最大站点数
	MAX_ROUTE_STOPS = 20
)

var benchmarkRenderSettings = json.RawMessage(`{
	"width": 1200, "height": 1200, "padding": 50,
	"line_width": 14, "stop_radius": 5,
	"bus_label_font_size": 20, "bus_label_offset": [7, 15],
	"stop_label_font_size": 20, "stop_label_offset": [7, -3],
	"underlayer_color": [255, 255, 255, 0.85], "underlayer_width": 3,
	"color_palette": ["green", [255, 160, 0], "red"]
}`)

// randomDocument 随机生成一个可加载的请求文档，末尾附带一次地图绘制
func randomDocument(e *rand.Rand, stops, buses, count int) request.Document {
	stops = max(stops, 2)
	coords := make([]geo.Coordinates, stops)
	names := make([]string, stops)
	for i := range coords {
		coords[i] = geo.Coordinates{
			Lat: 55.5 + e.Float64()*0.3,
			Lng: 37.3 + e.Float64()*0.5,
		}
		names[i] = fmt.Sprintf("stop-%d", i)
	}
	distances := make([]map[string]int, stops)
	for i := range distances {
		distances[i] = make(map[string]int)
	}
	addDistance := func(from, to int) {
		if _, ok := distances[from][names[to]]; ok {
			return
		}
		d := geo.ComputeDistance(coords[from], coords[to]) * ROAD_FACTOR
		distances[from][names[to]] = int(math.Ceil(d)) + 1
	}

	doc := request.Document{RenderSettings: benchmarkRenderSettings}
	for i := 0; i < buses; i++ {
		n := 2 + e.Intn(min(MAX_ROUTE_STOPS, stops)-1)
		route := make([]int, n)
		route[0] = e.Intn(stops)
		for j := 1; j < n; j++ {
			// 相邻站点不重复
			route[j] = (route[j-1] + 1 + e.Intn(stops-1)) % stops
		}
		ring := e.Intn(2) == 0
		if ring {
			route = append(route, route[0])
		}
		for j := 1; j < len(route); j++ {
			addDistance(route[j-1], route[j])
		}
		routeNames := make([]string, len(route))
		for j, s := range route {
			routeNames[j] = names[s]
		}
		doc.BaseRequests = append(doc.BaseRequests, request.BaseRequest{
			Type:        request.TYPE_BUS,
			Name:        fmt.Sprintf("bus-%d", i),
			Stops:       routeNames,
			IsRoundtrip: ring,
		})
	}
	for i := range names {
		doc.BaseRequests = append(doc.BaseRequests, request.BaseRequest{
			Type:          request.TYPE_STOP,
			Name:          names[i],
			Latitude:      coords[i].Lat,
			Longitude:     coords[i].Lng,
			RoadDistances: distances[i],
		})
	}
	for i := 0; i < count; i++ {
		req := request.StatRequest{ID: i + 1}
		switch e.Intn(3) {
		case 0:
			req.Type, req.Name = request.TYPE_BUS, fmt.Sprintf("bus-%d", e.Intn(buses+1))
		case 1:
			req.Type, req.Name = request.TYPE_STOP, names[e.Intn(stops)]
		default:
			req.Type, req.Name = request.TYPE_STOP, fmt.Sprintf("missing-%d", i)
		}
		raw, err := json.Marshal(req)
		if err != nil {
			log.Panicf("marshal stat request: %v", err)
		}
		doc.StatRequests = append(doc.StatRequests, raw)
	}
	raw, err := json.Marshal(request.StatRequest{ID: count + 1, Type: request.TYPE_MAP})
	if err != nil {
		log.Panicf("marshal stat request: %v", err)
	}
	doc.StatRequests = append(doc.StatRequests, raw)
	return doc
}

func runBenchmark() {
	log.Logger.SetLevel(logrus.WarnLevel)
	// 设置随机种子
	e := rand.New(rand.NewSource(*benchmarkSeed))
	docs := make([]request.Document, *benchmarkCount)
	for i := range docs {
		docs[i] = randomDocument(e, *benchmarkStops, *benchmarkBuses, *benchmarkBuses)
	}

	// 开始benchmark
	start := time.Now()
	var success atomic.Int32
	process := func(doc request.Document) {
		if _, err := request.Process(doc); err != nil {
			log.Error("benchmark failed, err:", err)
			return
		}
		success.Add(1)
	}
	if *benchmarkCPU == 1 {
		for _, doc := range docs {
			process(doc)
		}
	} else {
		// 设置cpu数量
		runtime.GOMAXPROCS(*benchmarkCPU)
		var wg sync.WaitGroup
		wg.Add(len(docs))
		for _, doc := range docs {
			go func(doc request.Document) {
				defer wg.Done()
				process(doc)
			}(doc)
		}
		wg.Wait()
	}
	timeCost := time.Since(start)
	log.Warn(
		"benchmark finished", "\n",
		"count:", *benchmarkCount, "\n",
		"time:", timeCost, "\n",
		"avg:", timeCost/time.Duration(max(*benchmarkCount, 1)), "\n",
		"success:", success.Load(), "\n",
	)
}
