// Package svg writes the small subset of SVG used for transit maps:
// circles, polylines and text with stroke/fill attributes.
package svg

import (
	"bytes"
	"io"
	"strconv"
	"strings"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8" ?>`
	svgOpen   = `<svg xmlns="http://www.w3.org/2000/svg" version="1.1">`
	svgClose  = `</svg>`
	indent    = "  "
)

type Point struct {
	X, Y float64
}

type StrokeLineCap int

const (
	LineCapUnset StrokeLineCap = iota
	LineCapButt
	LineCapRound
	LineCapSquare
)

func (c StrokeLineCap) String() string {
	switch c {
	case LineCapButt:
		return "butt"
	case LineCapRound:
		return "round"
	case LineCapSquare:
		return "square"
	default:
		return ""
	}
}

type StrokeLineJoin int

const (
	LineJoinUnset StrokeLineJoin = iota
	LineJoinArcs
	LineJoinBevel
	LineJoinMiter
	LineJoinMiterClip
	LineJoinRound
)

func (j StrokeLineJoin) String() string {
	switch j {
	case LineJoinArcs:
		return "arcs"
	case LineJoinBevel:
		return "bevel"
	case LineJoinMiter:
		return "miter"
	case LineJoinMiterClip:
		return "miter-clip"
	case LineJoinRound:
		return "round"
	default:
		return ""
	}
}

// PathProps 填充与描边属性，零值字段不输出
type PathProps struct {
	Fill        Color
	Stroke      Color
	StrokeWidth *float64
	LineCap     StrokeLineCap
	LineJoin    StrokeLineJoin
}

// Width 构造StrokeWidth
func Width(w float64) *float64 {
	return &w
}

func (p PathProps) render(b *bytes.Buffer) {
	if p.Fill != nil {
		writeAttr(b, "fill", p.Fill.String())
	}
	if p.Stroke != nil {
		writeAttr(b, "stroke", p.Stroke.String())
	}
	if p.StrokeWidth != nil {
		writeAttr(b, "stroke-width", formatNumber(*p.StrokeWidth))
	}
	if p.LineCap != LineCapUnset {
		writeAttr(b, "stroke-linecap", p.LineCap.String())
	}
	if p.LineJoin != LineJoinUnset {
		writeAttr(b, "stroke-linejoin", p.LineJoin.String())
	}
}

type Object interface {
	render(b *bytes.Buffer)
}

// ObjectContainer 可接收SVG对象的容器
type ObjectContainer interface {
	Add(obj Object)
}

type Circle struct {
	Center Point
	Radius float64
	PathProps
}

func (c *Circle) render(b *bytes.Buffer) {
	b.WriteString("<circle")
	writeAttr(b, "cx", formatNumber(c.Center.X))
	writeAttr(b, "cy", formatNumber(c.Center.Y))
	writeAttr(b, "r", formatNumber(c.Radius))
	// r之后固定多一个空格
	b.WriteByte(' ')
	c.PathProps.render(b)
	b.WriteString("/>")
}

type Polyline struct {
	Points []Point
	PathProps
}

func (p *Polyline) render(b *bytes.Buffer) {
	b.WriteString(`<polyline points="`)
	for i, point := range p.Points {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(formatNumber(point.X))
		b.WriteByte(',')
		b.WriteString(formatNumber(point.Y))
	}
	b.WriteByte('"')
	p.PathProps.render(b)
	b.WriteString("/>")
}

type Text struct {
	Position   Point
	Offset     Point
	FontSize   uint32
	FontFamily string
	FontWeight string
	Data       string
	PathProps
}

func (t *Text) render(b *bytes.Buffer) {
	b.WriteString("<text")
	writeAttr(b, "x", formatNumber(t.Position.X))
	writeAttr(b, "y", formatNumber(t.Position.Y))
	writeAttr(b, "dx", formatNumber(t.Offset.X))
	writeAttr(b, "dy", formatNumber(t.Offset.Y))
	writeAttr(b, "font-size", strconv.FormatUint(uint64(t.FontSize), 10))
	if t.FontFamily != "" {
		writeAttr(b, "font-family", t.FontFamily)
	}
	if t.FontWeight != "" {
		writeAttr(b, "font-weight", t.FontWeight)
	}
	t.PathProps.render(b)
	b.WriteByte('>')
	b.WriteString(Escape(t.Data))
	b.WriteString("</text>")
}

// Document 按添加顺序输出对象，后添加的对象绘制在上层
type Document struct {
	objects []Object
}

func NewDocument() *Document {
	return &Document{objects: make([]Object, 0)}
}

func (d *Document) Add(obj Object) {
	d.objects = append(d.objects, obj)
}

func (d *Document) Len() int {
	return len(d.objects)
}

func (d *Document) Render(w io.Writer) error {
	var b bytes.Buffer
	// 声明后空一行
	b.WriteString(xmlHeader)
	b.WriteString("\n\n")
	b.WriteString(svgOpen)
	b.WriteByte('\n')
	for _, obj := range d.objects {
		b.WriteString(indent)
		obj.render(&b)
		b.WriteByte('\n')
	}
	b.WriteString(svgClose)
	_, err := w.Write(b.Bytes())
	return err
}

func (d *Document) String() string {
	var sb strings.Builder
	// strings.Builder的Write不会返回错误
	_ = d.Render(&sb)
	return sb.String()
}

var escaper = strings.NewReplacer(
	`&`, "&amp;",
	`"`, "&quot;",
	`'`, "&apos;",
	`<`, "&lt;",
	`>`, "&gt;",
)

// Escape 转义文本中的XML特殊字符
func Escape(s string) string {
	return escaper.Replace(s)
}

func writeAttr(b *bytes.Buffer, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(value)
	b.WriteByte('"')
}

// formatNumber 6位有效数字，与流式输出的默认精度一致
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
