// Package configfile reads and updates the files of a DeepRacer training
// setup: the reward config sidecar, model_metadata.json,
// hyperparameters.json and run.env.
package configfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mpapenbr/deepracer-toolkit-go/pkg/model"
)

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return true
	default:
		return false
	}
}

// LoadRewardConfig reads a reward config. Files ending in .yml/.yaml are read
// as YAML, everything else as JSON.
func LoadRewardConfig(path string) (*model.RewardConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ret := &model.RewardConfig{}
	if isYAML(path) {
		err = yaml.Unmarshal(data, ret)
	} else {
		err = json.Unmarshal(data, ret)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return ret, nil
}

func SaveRewardConfig(path string, cfg *model.RewardConfig) error {
	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "    ")
		data = append(data, '\n')
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
