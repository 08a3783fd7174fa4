//nolint:funlen,errcheck //ok for this test code
package calibration

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"gotest.tools/v3/assert"

	"github.com/mpapenbr/deepracer-toolkit-go/pkg/geometry"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/model"
	"github.com/mpapenbr/deepracer-toolkit-go/testsupport/testdb"
)

func sampleConfig(track string, lookAhead int) *model.RewardConfig {
	return &model.RewardConfig{
		Track:         track,
		RewardType:    1,
		WaypointCount: 3,
		Aggregate:     15,
		Importance: geometry.Histogram{
			Edges:  []float64{-0.2, 0, 0.2},
			Values: []float64{1, 0},
			Counts: []int{1, 2},
		},
		Difficulty: model.DifficultyConfig{
			SkipAhead: 1,
			LookAhead: lookAhead,
			Min:       0.01,
			Max:       0.3,
			Histogram: geometry.Histogram{
				Edges:  []float64{0.01, 0.1, 0.2, 0.3},
				Values: []float64{3, 2, 1},
				Counts: []int{2, 0, 1},
			},
		},
		Heading: model.HeadingConfig{Delay: 4, Offset: 1},
		Agent: model.ActionSpace{
			SteeringAngle: model.Range{High: 30, Low: -30},
			Speed:         model.Range{High: 3, Low: 1},
		},
	}
}

func TestCreateAndLoad(t *testing.T) {
	pool := testdb.InitTestDB()
	ctx := context.Background()

	var first *model.DBCalibration
	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		var err error
		first, err = Create(ctx, tx, sampleConfig("caecer_gp", 0))
		return err
	})
	assert.NilError(t, err)
	// separate transaction, created_at differs
	second, err := Create(ctx, pool, sampleConfig("caecer_gp", 2))
	assert.NilError(t, err)
	assert.Assert(t, first.ID != uuid.Nil)
	assert.Assert(t, first.ID != second.ID)

	got, err := LoadByID(ctx, pool, first.ID)
	assert.NilError(t, err)
	assert.DeepEqual(t, *sampleConfig("caecer_gp", 0), got.Data)
	assert.Equal(t, "caecer_gp", got.Track)

	latest, err := LoadLatestByTrack(ctx, pool, "caecer_gp")
	assert.NilError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, 2, latest.Data.Difficulty.LookAhead)

	all, err := LoadAllByTrack(ctx, pool, "caecer_gp")
	assert.NilError(t, err)
	assert.Equal(t, 2, len(all))
	assert.DeepEqual(t, []uuid.UUID{second.ID, first.ID}, []uuid.UUID{all[0].ID, all[1].ID})
}

func TestLoadUnknown(t *testing.T) {
	pool := testdb.InitTestDB()
	ctx := context.Background()

	_, err := LoadByID(ctx, pool, uuid.Must(uuid.NewV4()))
	assert.Assert(t, errors.Is(err, ErrNotFound))
	_, err = LoadLatestByTrack(ctx, pool, "unknown")
	assert.Assert(t, errors.Is(err, ErrNotFound))

	all, err := LoadAllByTrack(ctx, pool, "unknown")
	assert.NilError(t, err)
	assert.Equal(t, 0, len(all))
}

func TestDelete(t *testing.T) {
	pool := testdb.InitTestDB()
	ctx := context.Background()
	a, err := Create(ctx, pool, sampleConfig("a", 0))
	assert.NilError(t, err)
	Create(ctx, pool, sampleConfig("b", 0))
	Create(ctx, pool, sampleConfig("b", 1))

	tests := []struct {
		name string
		del  func() (int, error)
		want int
	}{
		{name: "by id", del: func() (int, error) { return DeleteByID(ctx, pool, a.ID) }, want: 1},
		{name: "by id again", del: func() (int, error) { return DeleteByID(ctx, pool, a.ID) }, want: 0},
		{name: "by track", del: func() (int, error) { return DeleteByTrack(ctx, pool, "b") }, want: 2},
		{name: "unknown track", del: func() (int, error) { return DeleteByTrack(ctx, pool, "c") }, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.del()
			assert.NilError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
