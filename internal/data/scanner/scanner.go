package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/penwyp/go-atak-replay/internal/util"
)

// LogExtension is the suffix of snapshot log files
const LogExtension = ".log"

// FileScanner finds snapshot logs under a directory
type FileScanner struct {
	baseDir string
	logger  util.LoggerInterface
}

// LogFile is a discovered log with its modification time
type LogFile struct {
	Path    string
	ModTime time.Time
}

// NewFileScanner creates a new FileScanner instance
func NewFileScanner(baseDir string) *FileScanner {
	return &FileScanner{
		baseDir: baseDir,
		logger:  util.Component("scanner"),
	}
}

// Scan walks the directory and returns every .log file, oldest first.
// Unreadable entries are skipped.
func (s *FileScanner) Scan() ([]LogFile, error) {
	start := time.Now()
	var files []LogFile
	dirCount := 0

	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Debug("Skip path", util.F("path", path), util.F("error", err.Error()))
			return nil
		}
		if d.IsDir() {
			dirCount++
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), LogExtension) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		files = append(files, LogFile{Path: path, ModTime: info.ModTime()})
		return nil
	})

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].Path < files[j].Path
		}
		return files[i].ModTime.Before(files[j].ModTime)
	})

	s.logger.Debug("Scan completed",
		util.F("dir", s.baseDir),
		util.F("directories", dirCount),
		util.F("logs", len(files)),
		util.F("duration", time.Since(start).String()),
	)
	return files, err
}

// Latest returns the most recently modified log under the directory
func (s *FileScanner) Latest() (string, error) {
	files, err := s.Scan()
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no %s files in %s", LogExtension, s.baseDir)
	}
	return files[len(files)-1].Path, nil
}

// ResolveLogPath returns path itself for a file, or the newest log inside it
// for a directory
func ResolveLogPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return path, nil
	}
	return NewFileScanner(path).Latest()
}
