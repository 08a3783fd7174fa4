package configfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ohler55/ojg/oj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/deepracer-toolkit-go/pkg/geometry"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/model"
)

const modelMetadata = `{
  "action_space": {
    "speed": {"high": 4, "low": 1},
    "steering_angle": {"high": 30, "low": -30}
  },
  "sensor": ["FRONT_FACING_CAMERA"],
  "neural_network": "DEEP_CONVOLUTIONAL_NETWORK_SHALLOW",
  "training_algorithm": "sac",
  "action_space_type": "continuous",
  "version": "5"
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func sampleConfig() *model.RewardConfig {
	return &model.RewardConfig{
		Track:         "2022_april_pro_ccw",
		RewardType:    1,
		WaypointCount: 227,
		Aggregate:     15,
		Importance: geometry.Histogram{
			Edges:  []float64{-0.1, 0, 0.1},
			Values: []float64{1, 0.25},
			Counts: []int{20, 207},
		},
		Difficulty: model.DifficultyConfig{
			SkipAhead: 1,
			Max:       0.12,
			Min:       0.001,
			Weighting: &geometry.SigmoidParams{K: 30, X0: 0.5, YMax: 1},
			Histogram: geometry.Histogram{
				Edges:  []float64{0.001, 0.04, 0.08, 0.12},
				Values: []float64{3, 1.5, 1},
				Counts: []int{150, 50, 27},
			},
		},
		Heading: model.HeadingConfig{Delay: 4, Offset: 1},
		Agent: model.ActionSpace{
			SteeringAngle: model.Range{High: 30, Low: -30},
			Speed:         model.Range{High: 3, Low: 1},
		},
	}
}

func TestRewardConfigFiles(t *testing.T) {
	for _, name := range []string{"reward_config.json", "reward_config.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, SaveRewardConfig(path, sampleConfig()))
			got, err := LoadRewardConfig(path)
			require.NoError(t, err)
			if diff := cmp.Diff(sampleConfig(), got); diff != "" {
				t.Errorf("LoadRewardConfig() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRewardConfigKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reward_config.json")
	require.NoError(t, SaveRewardConfig(path, sampleConfig()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// the reward function reads these keys
	for _, key := range []string{`"skip-ahead"`, `"look-ahead"`, `"waypoint_count"`, `"steering_angle"`} {
		assert.Contains(t, string(data), key)
	}
	assert.NotContains(t, string(data), `"step_reward"`)
}

func TestLoadRewardConfigErrors(t *testing.T) {
	_, err := LoadRewardConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadRewardConfig(writeFile(t, "broken.json", "{"))
	assert.Error(t, err)
}

func TestUpdateAgentSpeed(t *testing.T) {
	path := writeFile(t, "model_metadata.json", modelMetadata)
	require.NoError(t, UpdateAgentSpeed(path, model.Range{High: 3.5, Low: 1.25}))

	got, err := ReadActionSpace(path)
	require.NoError(t, err)
	assert.Equal(t, model.ActionSpace{
		SteeringAngle: model.Range{High: 30, Low: -30},
		Speed:         model.Range{High: 3.5, Low: 1.25},
	}, got)

	// unrelated entries are kept
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	obj, err := oj.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "sac", obj.(map[string]any)["training_algorithm"])
}

func TestUpdateLearningRate(t *testing.T) {
	path := writeFile(t, "hyperparameters.json", `{"batch_size": 64, "lr": 0.0003}`)
	require.NoError(t, UpdateLearningRate(path, 0.0001))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	obj, err := oj.Parse(data)
	require.NoError(t, err)
	m := obj.(map[string]any)
	assert.InDelta(t, 0.0001, m["lr"], 1e-12)
	assert.EqualValues(t, 64, m["batch_size"])
}

func TestReadActionSpaceMissing(t *testing.T) {
	_, err := ReadActionSpace(writeFile(t, "model_metadata.json", `{"version": "5"}`))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadWorldName(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr error
	}{
		{
			name:    "found",
			content: "DR_RUN_ID=0\nDR_WORLD_NAME=2022_april_pro_ccw\nDR_RACE_TYPE=TIME_TRIAL\n",
			want:    "2022_april_pro_ccw",
		},
		{
			name:    "with comments",
			content: "# world\nDR_WORLD_NAME=caecer_gp\n",
			want:    "caecer_gp",
		},
		{name: "missing", content: "DR_RUN_ID=0\n", wantErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadWorldName(writeFile(t, "run.env", tt.content))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
