package configfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/mpapenbr/deepracer-toolkit-go/pkg/model"
)

var ErrNotFound = errors.New("entry not found")

// PatchJSONFile sets the values at the given JSONPath expressions and
// rewrites the file with an indentation of 4.
func PatchJSONFile(path string, values map[string]any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	obj, err := oj.Parse(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		x, err := jp.ParseString(k)
		if err != nil {
			return err
		}
		if err := x.Set(obj, values[k]); err != nil {
			return fmt.Errorf("set %s: %w", k, err)
		}
	}
	out := oj.JSON(obj, &ojg.Options{Indent: 4, Sort: true})
	return os.WriteFile(path, []byte(out+"\n"), 0o600)
}

// UpdateAgentSpeed replaces the speed range of the action space in
// model_metadata.json
func UpdateAgentSpeed(path string, speed model.Range) error {
	return PatchJSONFile(path, map[string]any{
		"$.action_space.speed.high": speed.High,
		"$.action_space.speed.low":  speed.Low,
	})
}

// UpdateLearningRate replaces the learning rate in hyperparameters.json
func UpdateLearningRate(path string, lr float64) error {
	return PatchJSONFile(path, map[string]any{"$.lr": lr})
}

// ReadActionSpace extracts the action space from model_metadata.json
func ReadActionSpace(path string) (model.ActionSpace, error) {
	ret := model.ActionSpace{}
	data, err := os.ReadFile(path)
	if err != nil {
		return ret, err
	}
	obj, err := oj.Parse(data)
	if err != nil {
		return ret, fmt.Errorf("parse %s: %w", path, err)
	}
	res := jp.MustParseString("$.action_space").Get(obj)
	if len(res) == 0 {
		return ret, fmt.Errorf("%w: action_space in %s", ErrNotFound, path)
	}
	err = json.Unmarshal([]byte(oj.JSON(res[0])), &ret)
	return ret, err
}
