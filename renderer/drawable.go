package renderer

import (
	"git.fiblab.net/sim/catalogue/renderer/svg"
)

type routeLine struct {
	points   []svg.Point
	color    svg.Color
	settings *Settings
}

func (l *routeLine) Draw(container svg.ObjectContainer) {
	container.Add(&svg.Polyline{
		Points: l.points,
		PathProps: svg.PathProps{
			Fill:        svg.NoneColor,
			Stroke:      l.color,
			StrokeWidth: svg.Width(l.settings.LineWidth),
			LineCap:     svg.LineCapRound,
			LineJoin:    svg.LineJoinRound,
		},
	})
}

// underlayer 文字底衬，先于文字本身绘制
func underlayer(text svg.Text, s *Settings) *svg.Text {
	text.PathProps = svg.PathProps{
		Fill:        s.UnderlayerColor,
		Stroke:      s.UnderlayerColor,
		StrokeWidth: svg.Width(s.UnderlayerWidth),
		LineCap:     svg.LineCapRound,
		LineJoin:    svg.LineJoinRound,
	}
	return &text
}

type busLabel struct {
	position svg.Point
	name     string
	color    svg.Color
	settings *Settings
}

func (l *busLabel) Draw(container svg.ObjectContainer) {
	text := svg.Text{
		Position:   l.position,
		Offset:     l.settings.BusLabelOffset,
		FontSize:   l.settings.BusLabelFontSize,
		FontFamily: LABEL_FONT_FAMILY,
		FontWeight: BUS_LABEL_FONT_WEIGHT,
		Data:       l.name,
	}
	container.Add(underlayer(text, l.settings))
	text.Fill = l.color
	container.Add(&text)
}

type stopMarker struct {
	center   svg.Point
	settings *Settings
}

func (m *stopMarker) Draw(container svg.ObjectContainer) {
	container.Add(&svg.Circle{
		Center:    m.center,
		Radius:    m.settings.StopRadius,
		PathProps: svg.PathProps{Fill: STOP_FILL_COLOR},
	})
}

type stopLabel struct {
	position svg.Point
	name     string
	settings *Settings
}

func (l *stopLabel) Draw(container svg.ObjectContainer) {
	text := svg.Text{
		Position:   l.position,
		Offset:     l.settings.StopLabelOffset,
		FontSize:   l.settings.StopLabelFontSize,
		FontFamily: LABEL_FONT_FAMILY,
		Data:       l.name,
	}
	container.Add(underlayer(text, l.settings))
	text.Fill = STOP_LABEL_COLOR
	container.Add(&text)
}
