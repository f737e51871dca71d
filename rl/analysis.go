package rl

import (
	"fmt"
	"math"
	"os"
	"path"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// RewardAnalyzer collects the per-episode rewards.
func RewardAnalyzer() Analyzer {
	return func(stats []EpisodeStats) DataSet {
		rewards := make([]float64, len(stats))
		for i, s := range stats {
			rewards[i] = s.Reward
		}
		return rewards
	}
}

// BestTimeAnalyzer collects the running best race time per episode.
func BestTimeAnalyzer() Analyzer {
	return func(stats []EpisodeStats) DataSet {
		best := make([]float64, len(stats))
		cur := math.Inf(1)
		for i, s := range stats {
			if s.TotalTime < cur {
				cur = s.TotalTime
			}
			best[i] = cur
		}
		return best
	}
}

// PitCountAnalyzer collects the per-episode pit stop counts.
func PitCountAnalyzer() Analyzer {
	return func(stats []EpisodeStats) DataSet {
		pits := make([]float64, len(stats))
		for i, s := range stats {
			pits[i] = float64(s.PitStops)
		}
		return pits
	}
}

// LinePlotter overlays one line per experiment and saves the plot as
// fileName under plotPath.
func LinePlotter(plotPath, fileName, yLabel string) Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(names []string, datasets []DataSet) {
		p := plot.New()
		p.Title.Text = "Comparison"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = yLabel
		for i := 0; i < len(names); i++ {
			vals := datasets[i].([]float64)
			points := make(plotter.XYs, len(vals))
			for j, v := range vals {
				points[j] = plotter.XY{
					X: float64(j),
					Y: v,
				}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)
			if len(vals) > 0 {
				fmt.Printf("%s: final %s = %.2f\n", names[i], yLabel, vals[len(vals)-1])
			}
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, fileName))
	}
}
