// Package textio implements the line-oriented text protocol:
//
//	Stop X: 55.611087, 37.20829, 3900m to Y
//	Bus 256: A > B > C > A
//	Bus 750: A - B - C
//	Bus 256
//	Stop X
package textio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"git.fiblab.net/sim/catalogue/catalogue"
	"git.fiblab.net/sim/catalogue/catalogue/geo"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "textio")

const (
	RING_SEPARATOR = ">"
	LINE_SEPARATOR = "-"
	// 道路距离 "3900m to Y"
	DISTANCE_SEPARATOR = "m to "
)

type stopLine struct {
	name        string
	coordinates geo.Coordinates
	distances   []distance
}

type distance struct {
	to     string
	meters int
}

type busLine struct {
	name  string
	stops []string
	kind  catalogue.RouteKind
}

// Query 一条统计查询，Type为"Bus"或"Stop"
type Query struct {
	Type string
	Name string
}

// Read 读取 N行基础数据 + M行查询
func Read(r io.Reader) (*catalogue.Catalogue, []Query, error) {
	scanner := bufio.NewScanner(r)
	lines, err := readBlock(scanner)
	if err != nil {
		return nil, nil, fmt.Errorf("read base lines: %w", err)
	}
	c, err := Load(lines)
	if err != nil {
		return nil, nil, err
	}
	queryLines, err := readBlock(scanner)
	if err != nil {
		return nil, nil, fmt.Errorf("read query lines: %w", err)
	}
	queries := make([]Query, 0, len(queryLines))
	for _, line := range queryLines {
		q, err := ParseQuery(line)
		if err != nil {
			return nil, nil, err
		}
		queries = append(queries, q)
	}
	return c, queries, nil
}

// readBlock 读取行数及其后的对应行
func readBlock(scanner *bufio.Scanner) ([]string, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, io.ErrUnexpectedEOF
	}
	count, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || count < 0 {
		return nil, fmt.Errorf("invalid line count %q", scanner.Text())
	}
	lines := make([]string, 0, count)
	for len(lines) < count && scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) < count {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, io.ErrUnexpectedEOF
	}
	return lines, nil
}

// Load 按 车站 -> 道路距离 -> 线路 的顺序构建catalogue
func Load(lines []string) (*catalogue.Catalogue, error) {
	stops := make([]stopLine, 0)
	buses := make([]busLine, 0)
	for _, line := range lines {
		kind, name, body, err := splitCommand(line)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "Stop":
			stop, err := parseStop(name, body)
			if err != nil {
				return nil, err
			}
			stops = append(stops, stop)
		case "Bus":
			buses = append(buses, parseBus(name, body))
		default:
			return nil, fmt.Errorf("unknown command %q in line %q", kind, line)
		}
	}

	c := catalogue.New()
	for _, s := range stops {
		if _, err := c.AddStop(catalogue.Stop{Name: s.name, Coordinates: s.coordinates}); err != nil {
			return nil, err
		}
	}
	for _, s := range stops {
		for _, d := range s.distances {
			if err := c.AddDistance(s.name, d.to, d.meters); err != nil {
				if errors.Is(err, catalogue.ErrUnknownStop) {
					log.Warnf("road distance from %s skipped: %v", s.name, err)
					continue
				}
				return nil, fmt.Errorf("road distance from %s: %w", s.name, err)
			}
		}
	}
	for _, b := range buses {
		if len(b.stops) == 0 {
			log.Warnf("bus %s skipped: %v", b.name, catalogue.ErrEmptyRoute)
			continue
		}
		ids, err := c.ResolveStops(b.stops)
		if err != nil {
			return nil, fmt.Errorf("bus %s: %w", b.name, err)
		}
		if _, err := c.AddBus(catalogue.NewBus(b.name, ids, b.kind)); err != nil {
			return nil, err
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	log.Debugf("loaded %d stops, %d buses", c.StopCount(), c.BusCount())
	return c, nil
}

// splitCommand "Stop X: body" -> ("Stop", "X", "body")
func splitCommand(line string) (kind, name, body string, err error) {
	head, body, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", "", fmt.Errorf("missing ':' in line %q", line)
	}
	kind, name, ok = strings.Cut(strings.TrimSpace(head), " ")
	if !ok || strings.TrimSpace(name) == "" {
		return "", "", "", fmt.Errorf("missing name in line %q", line)
	}
	return kind, strings.TrimSpace(name), strings.TrimSpace(body), nil
}

func parseStop(name, body string) (stopLine, error) {
	parts := lo.Map(strings.Split(body, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	if len(parts) < 2 {
		return stopLine{}, fmt.Errorf("stop %s: expect latitude and longitude, got %q", name, body)
	}
	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return stopLine{}, fmt.Errorf("stop %s: invalid latitude: %w", name, err)
	}
	lng, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return stopLine{}, fmt.Errorf("stop %s: invalid longitude: %w", name, err)
	}
	stop := stopLine{name: name, coordinates: geo.Coordinates{Lat: lat, Lng: lng}}
	for _, part := range parts[2:] {
		meters, to, ok := strings.Cut(part, DISTANCE_SEPARATOR)
		if !ok {
			return stopLine{}, fmt.Errorf("stop %s: invalid road distance %q", name, part)
		}
		m, err := strconv.Atoi(strings.TrimSpace(meters))
		if err != nil {
			return stopLine{}, fmt.Errorf("stop %s: invalid road distance %q: %w", name, part, err)
		}
		stop.distances = append(stop.distances, distance{to: strings.TrimSpace(to), meters: m})
	}
	return stop, nil
}

// parseBus ">"分隔为环线，"-"分隔为往返线
func parseBus(name, body string) busLine {
	bus := busLine{name: name, kind: catalogue.Ring}
	sep := RING_SEPARATOR
	if !strings.Contains(body, RING_SEPARATOR) {
		sep = LINE_SEPARATOR
		bus.kind = catalogue.Line
	}
	bus.stops = lo.FilterMap(strings.Split(body, sep), func(s string, _ int) (string, bool) {
		s = strings.TrimSpace(s)
		return s, s != ""
	})
	return bus
}

func ParseQuery(line string) (Query, error) {
	kind, name, ok := strings.Cut(strings.TrimSpace(line), " ")
	if !ok || strings.TrimSpace(name) == "" {
		return Query{}, fmt.Errorf("invalid query %q", line)
	}
	if kind != "Bus" && kind != "Stop" {
		return Query{}, fmt.Errorf("unknown query type %q", kind)
	}
	return Query{Type: kind, Name: strings.TrimSpace(name)}, nil
}
