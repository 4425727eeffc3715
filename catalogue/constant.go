package catalogue

import (
	"errors"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "catalogue")

var (
	// 错误：车站名重复
	ErrDuplicateStop = errors.New("stop already exists")
	// 错误：线路名重复
	ErrDuplicateBus = errors.New("bus already exists")
	// 错误：引用了未注册的车站
	ErrUnknownStop = errors.New("unknown stop")
	// 错误：线路没有车站
	ErrEmptyRoute = errors.New("route has no stops")
	// 错误：两个方向都没有记录道路距离
	ErrNoDistance = errors.New("no distance recorded")
	// 错误：线路地理长度为0，曲率无定义
	ErrDegenerateGeometry = errors.New("zero geographic route length")
)
