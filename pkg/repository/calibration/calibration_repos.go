//nolint:whitespace //can't make both the linter and editor happy :(
package calibration

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/mpapenbr/deepracer-toolkit-go/pkg/model"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/repository"
)

var ErrNotFound = errors.New("calibration not found")

// Create stores cfg with a new id and returns the stored entry
func Create(
	ctx context.Context,
	conn repository.Querier,
	cfg *model.RewardConfig,
) (*model.DBCalibration, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	row := conn.QueryRow(ctx,
		`insert into calibration
		(id, track, waypoint_count, skip_ahead, look_ahead, data)
		values ($1,$2,$3,$4,$5,$6)
		returning created_at`,
		id, cfg.Track, cfg.WaypointCount,
		cfg.Difficulty.SkipAhead, cfg.Difficulty.LookAhead, cfg)
	ret := &model.DBCalibration{ID: id, Track: cfg.Track, Data: *cfg}
	if err := row.Scan(&ret.CreatedAt); err != nil {
		return nil, err
	}
	return ret, nil
}

func LoadByID(
	ctx context.Context,
	conn repository.Querier,
	id uuid.UUID,
) (*model.DBCalibration, error) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where id=$1", selector), id)
	return scanOne(row, id.String())
}

// LoadLatestByTrack returns the most recent calibration of track
func LoadLatestByTrack(
	ctx context.Context,
	conn repository.Querier,
	track string,
) (*model.DBCalibration, error) {
	row := conn.QueryRow(ctx,
		fmt.Sprintf("%s where track=$1 order by created_at desc, id desc limit 1", selector),
		track)
	return scanOne(row, track)
}

// LoadAllByTrack returns the calibrations of track, newest first
func LoadAllByTrack(
	ctx context.Context,
	conn repository.Querier,
	track string,
) ([]*model.DBCalibration, error) {
	rows, err := conn.Query(ctx,
		fmt.Sprintf("%s where track=$1 order by created_at desc, id desc", selector),
		track)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := []*model.DBCalibration{}
	for rows.Next() {
		var item model.DBCalibration
		if err := scan(&item, rows); err != nil {
			return nil, err
		}
		ret = append(ret, &item)
	}
	return ret, rows.Err()
}

// deletes all calibrations of a track, returns number of rows deleted.
func DeleteByTrack(ctx context.Context, conn repository.Querier, track string) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from calibration where track=$1", track)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func DeleteByID(ctx context.Context, conn repository.Querier, id uuid.UUID) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from calibration where id=$1", id)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

// little helper
const selector = string(`select id,track,created_at,data from calibration`)

func scanOne(row pgx.Row, key string) (*model.DBCalibration, error) {
	var item model.DBCalibration
	if err := scan(&item, row); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, err
	}
	return &item, nil
}

func scan(e *model.DBCalibration, row pgx.Row) error {
	return row.Scan(&e.ID, &e.Track, &e.CreatedAt, &e.Data)
}
