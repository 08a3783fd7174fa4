package verify

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/samber/lo"

	"github.com/mpapenbr/deepracer-toolkit-go/pkg/calibration"
)

func deg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// printRows writes the verification table, angles in degrees
func printRows(out io.Writer, rows []calibration.Row) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w,
		"idx\tnext\tdirection\tchange\taggregate\tdifficulty\tnormalized\t"+
			"weighted\timportance\tthrottle\theading\t")
	for i := range rows {
		r := &rows[i]
		fmt.Fprintf(w, "%d\t%d\t%.1f\t%.2f\t%.2f\t%.4f\t%.4f\t%.4f\t%.4f\t%.2f\t%.1f\t\n",
			r.Index, r.Next,
			deg(r.Direction), deg(r.Change), deg(r.Aggregate),
			r.Difficulty, r.Normalized, r.Weighted,
			r.Importance, r.Throttle, deg(r.TargetHeading))
	}
	return w.Flush()
}

type summary struct {
	maxDifficulty float64
	meanThrottle  float64
}

func summarize(rows []calibration.Row) summary {
	if len(rows) == 0 {
		return summary{}
	}
	return summary{
		maxDifficulty: lo.Max(lo.Map(rows, func(r calibration.Row, _ int) float64 {
			return r.Difficulty
		})),
		meanThrottle: lo.MeanBy(rows, func(r calibration.Row) float64 {
			return r.Throttle
		}),
	}
}
