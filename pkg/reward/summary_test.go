package reward

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	records := []TraceRecord{
		{Steps: 1, Progress: 1, Reward: 1},
		{Steps: 2, Progress: 2, Reward: 1},
		{Steps: 3, Progress: 4, Reward: 2, Finished: true},
		{Steps: 1, Progress: 0.5, Reward: 0.5},
		{Steps: 2, Progress: 1.5, Reward: 1},
	}
	want := []EpisodeSummary{
		{Steps: 3, Progress: 4, TotalReward: 4, Finished: true},
		{Steps: 2, Progress: 1.5, TotalReward: 1.5},
	}
	if diff := cmp.Diff(want, Summarize(records)); diff != "" {
		t.Errorf("Summarize() mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, Summarize(nil))
}

func TestReadTrace(t *testing.T) {
	e := NewEpisode(3)
	var sb strings.Builder
	sb.WriteString("robomaker | starting simulation\n")
	for i := 1; i <= 4; i++ {
		res := e.Step(Params{Steps: i, Progress: float64(i)})
		sb.WriteString("robomaker | " + res.Trace + "\n")
	}
	records, err := ReadTrace(strings.NewReader(sb.String()))
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, 4, records[3].Steps)

	_, err = ReadTrace(strings.NewReader(TracePrefix + "1,2,3\n"))
	assert.Error(t, err)
}
