package reward

import (
	"bufio"
	"io"
	"strings"

	"github.com/samber/lo"
)

// EpisodeSummary aggregates the trace records of one episode
type EpisodeSummary struct {
	Steps       int
	Progress    float64
	TotalReward float64
	Finished    bool
}

// Summarize groups records into episodes. A record whose step count does not
// exceed the one before starts a new episode.
func Summarize(records []TraceRecord) []EpisodeSummary {
	ret := []EpisodeSummary{}
	var cur []TraceRecord
	flush := func() {
		if len(cur) == 0 {
			return
		}
		last := cur[len(cur)-1]
		ret = append(ret, EpisodeSummary{
			Steps:       last.Steps,
			Progress:    last.Progress,
			TotalReward: lo.SumBy(cur, func(r TraceRecord) float64 { return r.Reward }),
			Finished:    last.Finished,
		})
		cur = nil
	}
	for _, r := range records {
		if len(cur) > 0 && r.Steps <= cur[len(cur)-1].Steps {
			flush()
		}
		cur = append(cur, r)
	}
	flush()
	return ret
}

// ReadTrace collects the trace records of r. Lines without the trace
// marker are skipped, malformed trace lines are reported as error.
func ReadTrace(r io.Reader) ([]TraceRecord, error) {
	ret := []TraceRecord{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, TracePrefix) {
			continue
		}
		rec, err := ParseTrace(line)
		if err != nil {
			return nil, err
		}
		ret = append(ret, rec)
	}
	return ret, scanner.Err()
}
