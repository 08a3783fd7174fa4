package configfile

import (
	"fmt"

	"github.com/spf13/viper"
)

const worldNameKey = "DR_WORLD_NAME"

// ReadWorldName returns the track name configured in the run.env of
// deepracer-for-cloud.
func ReadWorldName(path string) (string, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return "", err
	}
	ret := v.GetString(worldNameKey)
	if ret == "" {
		return "", fmt.Errorf("%w: %s in %s", ErrNotFound, worldNameKey, path)
	}
	return ret, nil
}
