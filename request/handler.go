package request

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"git.fiblab.net/sim/catalogue/catalogue"
	"git.fiblab.net/sim/catalogue/renderer"
)

// Handler 基于已加载的catalogue回答stat_requests
type Handler struct {
	catalogue *catalogue.Catalogue
	settings  json.RawMessage

	// 地图只绘制一次
	mapSVG     string
	mapErr     error
	mapPainted bool
}

func NewHandler(c *catalogue.Catalogue, renderSettings json.RawMessage) *Handler {
	return &Handler{catalogue: c, settings: renderSettings}
}

// Handle 逐条回答，输出与请求一一对应
func (h *Handler) Handle(reqs []json.RawMessage) any {
	b := NewBuilder().StartArray()
	for _, raw := range reqs {
		h.answer(b, raw)
	}
	return b.EndArray().Build()
}

func (h *Handler) answer(b *Builder, raw json.RawMessage) {
	b.StartDict()
	defer b.EndDict()

	var req StatRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		// 尽量回显id
		var probe struct {
			ID int `json:"id"`
		}
		_ = json.Unmarshal(raw, &probe)
		log.Warnf("malformed stat request %s: %v", raw, err)
		b.Key("request_id").Value(probe.ID).
			Key("error_message").Value(fmt.Sprintf("malformed request: %v", err))
		return
	}
	b.Key("request_id").Value(req.ID)

	switch req.Type {
	case TYPE_STOP:
		info := h.catalogue.GetStopInfo(req.Name)
		if !info.Found {
			b.Key("error_message").Value(NOT_FOUND)
			return
		}
		b.Key("buses").StartArray()
		for _, bus := range info.Buses {
			b.Value(bus)
		}
		b.EndArray()
	case TYPE_BUS:
		info, err := h.catalogue.GetBusInfo(req.Name)
		if err != nil {
			log.Warnf("bus %s: %v", req.Name, err)
			b.Key("error_message").Value(err.Error())
			return
		}
		if !info.Found {
			b.Key("error_message").Value(NOT_FOUND)
			return
		}
		b.Key("curvature").Value(info.Curvature).
			Key("route_length").Value(info.RouteLength).
			Key("stop_count").Value(info.StopCount).
			Key("unique_stop_count").Value(info.UniqueStopCount)
	case TYPE_MAP:
		svg, err := h.renderMap()
		if err != nil {
			b.Key("error_message").Value(err.Error())
			return
		}
		b.Key("map").Value(svg)
	default:
		b.Key("error_message").Value(fmt.Sprintf("unknown request type %q", req.Type))
	}
}

func (h *Handler) renderMap() (string, error) {
	if h.mapPainted {
		return h.mapSVG, h.mapErr
	}
	h.mapPainted = true
	settings, err := ParseRenderSettings(h.settings)
	if err != nil {
		log.Warnf("map request skipped: %v", err)
		h.mapErr = err
		return "", err
	}
	start := time.Now()
	h.mapSVG = renderer.New(settings).Render(h.catalogue).String()
	log.Debugf("map rendered in %v", time.Since(start))
	return h.mapSVG, nil
}

// Process 加载base_requests并回答stat_requests
func Process(doc Document) (any, error) {
	start := time.Now()
	c, err := Load(doc.BaseRequests)
	if err != nil {
		return nil, fmt.Errorf("load base requests: %w", err)
	}
	log.Debugf("catalogue loaded in %v", time.Since(start))
	start = time.Now()
	out := NewHandler(c, doc.RenderSettings).Handle(doc.StatRequests)
	log.Debugf("%d stat requests answered in %v", len(doc.StatRequests), time.Since(start))
	return out, nil
}

func Decode(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// Encode 缩进输出，不转义HTML字符以保持SVG可读
func Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
