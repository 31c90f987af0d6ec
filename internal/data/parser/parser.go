package parser

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/penwyp/go-atak-replay/internal/core/classifier"
	"github.com/penwyp/go-atak-replay/internal/core/model"
	"github.com/penwyp/go-atak-replay/internal/util"
)

const (
	headerPrefix = "--- Snapshot"
	headerAt     = " at "
	headerZone   = " UTC"
)

// Stats counts what happened to each input line
type Stats struct {
	Lines    int `json:"lines"`
	Headers  int `json:"headers"`
	Entries  int `json:"entries"`
	Orphaned int `json:"orphaned"` // entry lines seen before any header
	Skipped  int `json:"skipped"`  // blank, unrecognized or malformed lines
}

// Result is the output of a parse: observations sorted by time
type Result struct {
	Observations []model.Observation
	Stats        Stats
}

// Parser reads snapshot logs. A malformed line never fails the parse; only
// I/O errors do.
type Parser struct {
	logger util.LoggerInterface
}

// NewParser creates a new Parser instance.
func NewParser() *Parser {
	return &Parser{logger: util.Component("parser")}
}

// ParseFile parses the log file at the specified path.
func (p *Parser) ParseFile(path string) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	start := time.Now()
	result, err := p.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	p.logger.Info("Parsed snapshot log",
		util.F("file", path),
		util.F("lines", result.Stats.Lines),
		util.F("headers", result.Stats.Headers),
		util.F("entries", result.Stats.Entries),
		util.F("orphaned", result.Stats.Orphaned),
		util.F("skipped", result.Stats.Skipped),
		util.F("duration", time.Since(start)))
	return result, nil
}

// Parse reads lines from r. Each entry is attributed to the most recent
// header; entries before the first header are dropped.
func (p *Parser) Parse(r io.Reader) (*Result, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	var (
		result      Result
		current     time.Time
		haveCurrent bool
	)

	for scanner.Scan() {
		result.Stats.Lines++
		lineNo := result.Stats.Lines
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, headerPrefix):
			ts, err := ParseHeader(line)
			if err != nil {
				result.Stats.Skipped++
				p.logger.Debugf("Skip malformed header at line %d: %v", lineNo, err)
				continue
			}
			current, haveCurrent = ts, true
			result.Stats.Headers++

		case strings.HasPrefix(line, "["):
			if !haveCurrent {
				result.Stats.Orphaned++
				p.logger.Debugf("Drop entry before first header at line %d", lineNo)
				continue
			}
			entry, err := ParseEntry(line)
			if err != nil {
				result.Stats.Skipped++
				p.logger.Debugf("Skip malformed entry at line %d: %v", lineNo, err)
				continue
			}
			entry.SnapshotTime = current
			entry.Line = lineNo
			result.Observations = append(result.Observations, entry)
			result.Stats.Entries++

		default:
			result.Stats.Skipped++
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	SortObservations(result.Observations)
	return &result, nil
}

// ParseHeader extracts the timestamp from
// "--- Snapshot at YYYY-MM-DD HH:MM:SS UTC ---". The UTC label is discarded.
func ParseHeader(line string) (time.Time, error) {
	idx := strings.Index(line, headerAt)
	if idx < 0 {
		return time.Time{}, fmt.Errorf("header has no timestamp")
	}
	ts := line[idx+len(headerAt):]
	if end := strings.Index(ts, headerZone); end >= 0 {
		ts = ts[:end]
	}
	return util.ParseLogTime(strings.TrimSpace(ts))
}

// ParseEntry parses "[time] entity: lon,lat[,...]". Only the first colon
// separates the entity from the coordinates; fields past the second
// coordinate are ignored.
func ParseEntry(line string) (model.Observation, error) {
	var obs model.Observation

	if !strings.HasPrefix(line, "[") {
		return obs, fmt.Errorf("entry must start with '['")
	}
	end := strings.IndexByte(line, ']')
	if end < 0 {
		return obs, fmt.Errorf("unterminated timestamp")
	}
	ts, err := util.ParseLogTime(line[1:end])
	if err != nil {
		return obs, fmt.Errorf("bad timestamp: %w", err)
	}

	rest := line[end+1:]
	colon := strings.IndexByte(rest, ':')
	if colon < 0 {
		return obs, fmt.Errorf("no entity separator")
	}
	entity := strings.TrimSpace(rest[:colon])
	if entity == "" {
		return obs, fmt.Errorf("empty entity identifier")
	}

	fields := strings.Split(strings.TrimSpace(rest[colon+1:]), ",")
	if len(fields) < 2 {
		return obs, fmt.Errorf("expected lon,lat but got %d field(s)", len(fields))
	}
	lon, err := parseCoordinate(fields[0])
	if err != nil {
		return obs, fmt.Errorf("bad longitude: %w", err)
	}
	lat, err := parseCoordinate(fields[1])
	if err != nil {
		return obs, fmt.Errorf("bad latitude: %w", err)
	}

	obs.Time = ts
	obs.EntityID = entity
	obs.Longitude = lon
	obs.Latitude = lat
	obs.Tag = classifier.DeriveTag(entity)
	return obs, nil
}

func parseCoordinate(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("coordinate %q is not finite", s)
	}
	return v, nil
}

// SortObservations orders by time, keeping input order for equal times
func SortObservations(obs []model.Observation) {
	sort.SliceStable(obs, func(i, j int) bool {
		return obs[i].Time.Before(obs[j].Time)
	})
}
