package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"git.fiblab.net/sim/catalogue/renderer"
	"git.fiblab.net/sim/catalogue/renderer/svg"
)

var ErrNoRenderSettings = errors.New("render settings missing")

type renderSettingsJSON struct {
	Width             float64           `json:"width"`
	Height            float64           `json:"height"`
	Padding           float64           `json:"padding"`
	LineWidth         float64           `json:"line_width"`
	StopRadius        float64           `json:"stop_radius"`
	BusLabelFontSize  uint32            `json:"bus_label_font_size"`
	BusLabelOffset    [2]float64        `json:"bus_label_offset"`
	StopLabelFontSize uint32            `json:"stop_label_font_size"`
	StopLabelOffset   [2]float64        `json:"stop_label_offset"`
	UnderlayerColor   json.RawMessage   `json:"underlayer_color"`
	UnderlayerWidth   float64           `json:"underlayer_width"`
	ColorPalette      []json.RawMessage `json:"color_palette"`
}

// ParseRenderSettings 解析并校验render_settings
func ParseRenderSettings(raw json.RawMessage) (renderer.Settings, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return renderer.Settings{}, ErrNoRenderSettings
	}
	var in renderSettingsJSON
	if err := json.Unmarshal(raw, &in); err != nil {
		return renderer.Settings{}, fmt.Errorf("decode render settings: %w", err)
	}
	underlayer, err := ParseColor(in.UnderlayerColor)
	if err != nil {
		return renderer.Settings{}, fmt.Errorf("underlayer_color: %w", err)
	}
	palette := make([]svg.Color, 0, len(in.ColorPalette))
	for i, raw := range in.ColorPalette {
		color, err := ParseColor(raw)
		if err != nil {
			return renderer.Settings{}, fmt.Errorf("color_palette[%d]: %w", i, err)
		}
		palette = append(palette, color)
	}
	s := renderer.Settings{
		Width:             in.Width,
		Height:            in.Height,
		Padding:           in.Padding,
		LineWidth:         in.LineWidth,
		StopRadius:        in.StopRadius,
		BusLabelFontSize:  in.BusLabelFontSize,
		BusLabelOffset:    svg.Point{X: in.BusLabelOffset[0], Y: in.BusLabelOffset[1]},
		StopLabelFontSize: in.StopLabelFontSize,
		StopLabelOffset:   svg.Point{X: in.StopLabelOffset[0], Y: in.StopLabelOffset[1]},
		UnderlayerColor:   underlayer,
		UnderlayerWidth:   in.UnderlayerWidth,
		ColorPalette:      palette,
	}
	if err := s.Validate(); err != nil {
		return renderer.Settings{}, fmt.Errorf("invalid render settings: %w", err)
	}
	return s, nil
}

// ParseColor 支持 "name"、[r,g,b]、[r,g,b,a] 三种格式
func ParseColor(raw json.RawMessage) (svg.Color, error) {
	if len(raw) == 0 {
		return nil, errors.New("color missing")
	}
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return svg.NamedColor(name), nil
	}
	var parts []float64
	if err := json.Unmarshal(raw, &parts); err != nil {
		return nil, fmt.Errorf("color should be a string or an array: %s", raw)
	}
	if len(parts) != 3 && len(parts) != 4 {
		return nil, fmt.Errorf("color array should have 3 or 4 items, got %d", len(parts))
	}
	rgb := make([]uint8, 3)
	for i, v := range parts[:3] {
		if v < 0 || v > 255 || v != math.Trunc(v) {
			return nil, fmt.Errorf("color component %v should be an integer in [0, 255]", v)
		}
		rgb[i] = uint8(v)
	}
	if len(parts) == 3 {
		return svg.Rgb{Red: rgb[0], Green: rgb[1], Blue: rgb[2]}, nil
	}
	if parts[3] < 0 || parts[3] > 1 {
		return nil, fmt.Errorf("color opacity %v should be in [0, 1]", parts[3])
	}
	return svg.Rgba{Red: rgb[0], Green: rgb[1], Blue: rgb[2], Opacity: parts[3]}, nil
}
