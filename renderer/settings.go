package renderer

import (
	"fmt"
	"math"

	"git.fiblab.net/sim/catalogue/renderer/svg"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "renderer")

const (
	// 坐标、尺寸取值上限
	MAX_SIZE = 100000

	BUS_LABEL_FONT_WEIGHT = "bold"
	LABEL_FONT_FAMILY     = "Verdana"
)

var (
	STOP_FILL_COLOR  = svg.NamedColor("white")
	STOP_LABEL_COLOR = svg.NamedColor("black")
)

var validate = validator.New()

// Settings 地图绘制参数
type Settings struct {
	Width   float64 `validate:"gte=0,lte=100000"`
	Height  float64 `validate:"gte=0,lte=100000"`
	Padding float64 `validate:"gte=0"`

	LineWidth  float64 `validate:"gte=0,lte=100000"`
	StopRadius float64 `validate:"gte=0,lte=100000"`

	BusLabelFontSize  uint32 `validate:"lte=100000"`
	BusLabelOffset    svg.Point
	StopLabelFontSize uint32 `validate:"lte=100000"`
	StopLabelOffset   svg.Point

	UnderlayerColor svg.Color `validate:"required"`
	UnderlayerWidth float64   `validate:"gte=0,lte=100000"`

	// 按线路名顺序循环使用
	ColorPalette []svg.Color `validate:"min=1,dive,required"`
}

func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return err
	}
	if limit := math.Min(s.Width, s.Height) / 2; s.Padding > 0 && s.Padding >= limit {
		return fmt.Errorf("padding %v should be less than %v", s.Padding, limit)
	}
	for _, offset := range []svg.Point{s.BusLabelOffset, s.StopLabelOffset} {
		if math.Abs(offset.X) > MAX_SIZE || math.Abs(offset.Y) > MAX_SIZE {
			return fmt.Errorf("label offset %v out of range [-%d, %d]", offset, MAX_SIZE, MAX_SIZE)
		}
	}
	return nil
}

func (s Settings) paletteColor(index int) svg.Color {
	return s.ColorPalette[index%len(s.ColorPalette)]
}
