// Package metrics records hook execution durations in an HDR histogram so
// long chains can be summarized without keeping every sample.
package metrics

import (
	"sync"
	"time"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"
)

// Histogram bounds: one millisecond up to one hour, three significant figures.
const (
	minTrackable = int64(time.Millisecond)
	maxTrackable = int64(time.Hour)
	sigFigures   = 3
)

// Recorder accumulates hook wall-clock durations. Safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	hist *hdrhistogram.Histogram
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		hist: hdrhistogram.New(minTrackable, maxTrackable, sigFigures),
	}
}

// Record adds one duration sample. Values outside the trackable range are
// clamped rather than dropped.
func (r *Recorder) Record(d time.Duration) {
	v := int64(d)
	if v < minTrackable {
		v = minTrackable
	}
	if v > maxTrackable {
		v = maxTrackable
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_ = r.hist.RecordValue(v)
}

// Summary is a point-in-time view of the recorded samples.
type Summary struct {
	Count int64
	P50   time.Duration
	P95   time.Duration
	P99   time.Duration
	Max   time.Duration
}

// Snapshot returns the current summary.
func (r *Recorder) Snapshot() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Summary{
		Count: r.hist.TotalCount(),
		P50:   time.Duration(r.hist.ValueAtQuantile(50)),
		P95:   time.Duration(r.hist.ValueAtQuantile(95)),
		P99:   time.Duration(r.hist.ValueAtQuantile(99)),
		Max:   time.Duration(r.hist.Max()),
	}
}

// Reset clears all recorded samples.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hist.Reset()
}
