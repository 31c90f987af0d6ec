package replay

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-atak-replay/internal/core/model"
	"github.com/penwyp/go-atak-replay/internal/util"
)

// FileWatcher reports changes to a single file. The parent directory is
// watched so editors that replace the file on save are still seen.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan model.FileEvent
	logger  util.LoggerInterface
}

func NewFileWatcher(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		path:    abs,
		events:  make(chan model.FileEvent, 16),
		logger:  util.Component("watcher"),
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.events)
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			fw.logger.Debug("Settings file changed", util.F("op", event.Op.String()))
			// Drop the event when a reload is already pending
			select {
			case fw.events <- model.FileEvent{Path: event.Name, Operation: event.Op.String()}:
			default:
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue running
			fw.logger.Error("File monitoring error", util.F("error", err.Error()))
		}
	}
}

func (fw *FileWatcher) Events() <-chan model.FileEvent {
	return fw.events
}

func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
