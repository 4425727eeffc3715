package svg

import "fmt"

// Color 可输出为SVG颜色属性值的颜色
type Color interface {
	String() string
}

// NamedColor 颜色名，如"red"
type NamedColor string

func (c NamedColor) String() string {
	return string(c)
}

// NoneColor 未设置的颜色
const NoneColor = NamedColor("none")

type Rgb struct {
	Red, Green, Blue uint8
}

func (c Rgb) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.Red, c.Green, c.Blue)
}

type Rgba struct {
	Red, Green, Blue uint8
	Opacity          float64
}

func (c Rgba) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.Red, c.Green, c.Blue, formatNumber(c.Opacity))
}
