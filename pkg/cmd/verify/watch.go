package verify

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/mpapenbr/deepracer-toolkit-go/log"
	"github.com/mpapenbr/deepracer-toolkit-go/pkg/utils"
)

// watch runs the verification whenever the content of file changes. The
// directory is watched since editors often replace the file instead of
// writing it.
func (v *verifier) watch(ctx context.Context, file string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	target, err := filepath.Abs(file)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}
	v.log.Info("watching config", log.String("file", target))
	for {
		select {
		case <-ctx.Done():
			v.log.Info("context done, stopping watch")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isChange(event, target) {
				continue
			}
			v.log.Debug("change detected",
				log.String("file", event.Name), log.Any("event", event))
			if !v.contentChanged(target) {
				continue
			}
			if err := v.run(ctx); err != nil {
				v.log.Error("verification failed", log.ErrorField(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			v.log.Error("watcher error", log.ErrorField(err))
		}
	}
}

func isChange(event fsnotify.Event, target string) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// contentChanged compares the fingerprint of file with the one of the last
// verified content. A single save often emits several events.
func (v *verifier) contentChanged(file string) bool {
	data, err := os.ReadFile(file)
	if err != nil {
		// let run report the error
		return true
	}
	fp := utils.Fingerprint(data)
	if fp == v.lastFingerprint {
		return false
	}
	v.lastFingerprint = fp
	return true
}
