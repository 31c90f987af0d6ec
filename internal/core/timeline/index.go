package timeline

import (
	"sort"
	"time"

	"github.com/penwyp/go-atak-replay/internal/core/model"
)

// Index is the sorted set of distinct observation times. The playback
// cursor is a position in this index, so each step lands on a real
// observation time.
type Index struct {
	times []time.Time
}

// Mark is a labelled scrubber position
type Mark struct {
	Index int
	Time  time.Time
}

// NewIndex builds the index from observations in any order
func NewIndex(obs []model.Observation) *Index {
	times := make([]time.Time, 0, len(obs))
	for _, o := range obs {
		times = append(times, o.Time)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	distinct := times[:0]
	for i, t := range times {
		if i == 0 || !t.Equal(distinct[len(distinct)-1]) {
			distinct = append(distinct, t)
		}
	}
	return &Index{times: distinct}
}

// Len returns the number of distinct times
func (ix *Index) Len() int {
	return len(ix.times)
}

// Empty reports whether the index has no times
func (ix *Index) Empty() bool {
	return len(ix.times) == 0
}

// At returns the time at position i. It panics if i is out of range.
func (ix *Index) At(i int) time.Time {
	return ix.times[i]
}

// LastIndex returns the final valid position, or -1 for an empty index
func (ix *Index) LastIndex() int {
	return len(ix.times) - 1
}

// Clamp limits i to [0, LastIndex]. An empty index clamps to 0.
func (ix *Index) Clamp(i int) int {
	if i < 0 || len(ix.times) == 0 {
		return 0
	}
	if i > len(ix.times)-1 {
		return len(ix.times) - 1
	}
	return i
}

// First and Last return the time bounds; ok is false for an empty index.
func (ix *Index) First() (time.Time, bool) {
	if len(ix.times) == 0 {
		return time.Time{}, false
	}
	return ix.times[0], true
}

func (ix *Index) Last() (time.Time, bool) {
	if len(ix.times) == 0 {
		return time.Time{}, false
	}
	return ix.times[len(ix.times)-1], true
}

// IndexAtOrBefore returns the greatest position whose time is <= t, or -1
// when t precedes every time.
func (ix *Index) IndexAtOrBefore(t time.Time) int {
	n := sort.Search(len(ix.times), func(i int) bool { return ix.times[i].After(t) })
	return n - 1
}

// Marks returns about n evenly spaced label positions, starting at 0 with
// step max(1, Len/n). It returns nil for an empty index or n <= 0.
func (ix *Index) Marks(n int) []Mark {
	if len(ix.times) == 0 || n <= 0 {
		return nil
	}
	step := len(ix.times) / n
	if step < 1 {
		step = 1
	}
	marks := make([]Mark, 0, len(ix.times)/step+1)
	for i := 0; i < len(ix.times); i += step {
		marks = append(marks, Mark{Index: i, Time: ix.times[i]})
	}
	return marks
}

// Span returns the duration between the first and last time
func (ix *Index) Span() time.Duration {
	if len(ix.times) < 2 {
		return 0
	}
	return ix.times[len(ix.times)-1].Sub(ix.times[0])
}
