package benchmark

import (
	"time"

	"github.com/montanaflynn/stats"
)

// Metric names used in reports.
const (
	MetricTopK     = "top_k"
	MetricKendall  = "kendall_tau"
	MetricWeighted = "weighted_rank"
)

// Metrics lists the reported metrics in display order.
var Metrics = []string{MetricTopK, MetricKendall, MetricWeighted}

// Scores holds the three distances between one ranking and the truth.
// Lower is better for all of them.
type Scores struct {
	TopK     float64 `json:"top_k"`
	Kendall  float64 `json:"kendall_tau"`
	Weighted float64 `json:"weighted_rank"`
}

func (s Scores) get(metric string) float64 {
	switch metric {
	case MetricTopK:
		return s.TopK
	case MetricKendall:
		return s.Kendall
	}
	return s.Weighted
}

// Trial is the outcome of one simulated tournament.
type Trial struct {
	Strategy string            `json:"strategy"`
	Trial    int               `json:"trial"`
	Votes    int               `json:"votes"`
	Duration time.Duration     `json:"duration"`
	Scores   map[string]Scores `json:"scores"` // keyed by aggregator
	// Components is the number of strongly connected components of the
	// final win graph.
	Components int `json:"components"`
}

// Summary aggregates one metric over every trial of a strategy and
// aggregator.
type Summary struct {
	Strategy   string  `json:"strategy"`
	Aggregator string  `json:"aggregator"`
	Metric     string  `json:"metric"`
	Mean       float64 `json:"mean"`
	Median     float64 `json:"median"`
	StdDev     float64 `json:"std_dev"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
}

// Report is the result of a benchmark run.
type Report struct {
	ID        string        `json:"id"`
	Version   string        `json:"version"`
	CreatedAt time.Time     `json:"created_at"`
	Duration  time.Duration `json:"duration"`
	Config    Config        `json:"config"`
	Trials    []Trial       `json:"trials"`
	Summaries []Summary     `json:"summaries"`

	// Cached marks a report loaded from the cache rather than computed.
	Cached bool `json:"-"`
}

// Summary returns the summary for one cell, if present.
func (r *Report) Summary(strategy, aggregator, metric string) (Summary, bool) {
	for _, s := range r.Summaries {
		if s.Strategy == strategy && s.Aggregator == aggregator && s.Metric == metric {
			return s, true
		}
	}
	return Summary{}, false
}

// summarize computes per-cell statistics. Cells keep the strategy and
// aggregator order of the configuration.
func summarize(cfg Config, trials []Trial) ([]Summary, error) {
	var out []Summary
	for _, strategy := range cfg.Strategies {
		for _, aggregator := range cfg.Aggregators {
			for _, metric := range Metrics {
				var data stats.Float64Data
				for _, t := range trials {
					if t.Strategy != strategy {
						continue
					}
					if s, ok := t.Scores[aggregator]; ok {
						data = append(data, s.get(metric))
					}
				}
				if len(data) == 0 {
					continue
				}
				s, err := describe(data)
				if err != nil {
					return nil, err
				}
				s.Strategy, s.Aggregator, s.Metric = strategy, aggregator, metric
				out = append(out, s)
			}
		}
	}
	return out, nil
}

func describe(data stats.Float64Data) (Summary, error) {
	var s Summary
	var err error
	if s.Mean, err = stats.Mean(data); err != nil {
		return s, err
	}
	if s.Median, err = stats.Median(data); err != nil {
		return s, err
	}
	if s.StdDev, err = stats.StandardDeviation(data); err != nil {
		return s, err
	}
	if s.Min, err = stats.Min(data); err != nil {
		return s, err
	}
	if s.Max, err = stats.Max(data); err != nil {
		return s, err
	}
	return s, nil
}
