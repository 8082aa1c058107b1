package ui

import (
	"strconv"
	"sync"

	"github.com/jedib0t/go-pretty/v6/progress"

	"github.com/g5becks/md2docx/internal/batch"
)

func NewProgressWriter() progress.Writer {
	writer := progress.NewWriter()
	writer.SetAutoStop(true)
	writer.SetTrackerLength(30)
	writer.SetStyle(progress.StyleBlocks)
	writer.Style().Visibility.ETA = true
	writer.Style().Visibility.Value = true

	return writer
}

// BatchProgress advances a progress tracker as batch inputs finish. Failed
// inputs are counted too, so the tracker completes when the batch does.
// The total is taken from the batch start event.
type BatchProgress struct {
	tracker *progress.Tracker
	mu      sync.Mutex
	failed  int
}

func NewBatchProgress(writer progress.Writer) *BatchProgress {
	tracker := &progress.Tracker{
		Message: "converting",
		Units:   progress.UnitsDefault,
	}
	writer.AppendTracker(tracker)

	return &BatchProgress{tracker: tracker}
}

// HandleEvent is the callback wired into batch.Options.OnEvent.
func (b *BatchProgress) HandleEvent(e batch.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch e.Kind {
	case batch.EventBatchStart:
		b.tracker.UpdateTotal(int64(e.Total))
		return
	case batch.EventFileStart:
		return
	}

	if e.Err != nil {
		b.failed++
		b.tracker.UpdateMessage("converting (" + strconv.Itoa(b.failed) + " failed)")
	}
	b.tracker.Increment(1)
}

// Done marks the tracker finished, or errored when any input failed.
func (b *BatchProgress) Done() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failed > 0 {
		b.tracker.MarkAsErrored()
		return
	}
	b.tracker.MarkAsDone()
}

// Value reports how many inputs have finished.
func (b *BatchProgress) Value() int64 {
	return b.tracker.Value()
}
