package textio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"git.fiblab.net/sim/catalogue/catalogue"
)

// Answer 逐行输出查询结果
func Answer(w io.Writer, c *catalogue.Catalogue, queries []Query) error {
	bw := bufio.NewWriter(w)
	for _, q := range queries {
		switch q.Type {
		case "Bus":
			writeBus(bw, c, q.Name)
		case "Stop":
			writeStop(bw, c, q.Name)
		default:
			fmt.Fprintf(bw, "%s %s: unknown query type\n", q.Type, q.Name)
		}
	}
	return bw.Flush()
}

func writeBus(w io.Writer, c *catalogue.Catalogue, name string) {
	info, err := c.GetBusInfo(name)
	switch {
	case err != nil:
		fmt.Fprintf(w, "Bus %s: %v\n", name, err)
	case !info.Found:
		fmt.Fprintf(w, "Bus %s: not found\n", name)
	default:
		fmt.Fprintf(w, "Bus %s: %d stops on route, %d unique stops, %s route length, %s curvature\n",
			name, info.StopCount, info.UniqueStopCount, formatNumber(info.RouteLength), formatNumber(info.Curvature))
	}
}

func writeStop(w io.Writer, c *catalogue.Catalogue, name string) {
	info := c.GetStopInfo(name)
	switch {
	case !info.Found:
		fmt.Fprintf(w, "Stop %s: not found\n", name)
	case len(info.Buses) == 0:
		fmt.Fprintf(w, "Stop %s: no buses\n", name)
	default:
		fmt.Fprintf(w, "Stop %s: buses %s\n", name, strings.Join(info.Buses, " "))
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
