package store

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/deepracer-toolkit-go/pkg/model"
)

func TestParseSelection(t *testing.T) {
	valid := uuid.Must(uuid.NewV7())
	tests := []struct {
		name    string
		id      string
		track   string
		want    uuid.UUID
		wantErr bool
	}{
		{name: "by id", id: valid.String(), want: valid},
		{name: "by track", track: "reInvent2019_track", want: uuid.Nil},
		{name: "both", id: valid.String(), track: "x", wantErr: true},
		{name: "none", wantErr: true},
		{name: "invalid id", id: "not-a-uuid", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSelection(tt.id, tt.track)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintList(t *testing.T) {
	items := []*model.DBCalibration{
		{
			ID:        uuid.Must(uuid.NewV7()),
			Track:     "a",
			CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			Data: model.RewardConfig{
				WaypointCount: 120,
				Difficulty:    model.DifficultyConfig{SkipAhead: 1, LookAhead: 2, Min: 0.01, Max: 0.5},
			},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, printList(&buf, items))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], items[0].ID.String())
	assert.Contains(t, lines[1], "2024-03-01T10:00:00Z")
	assert.Contains(t, lines[1], "0.5000")
}
