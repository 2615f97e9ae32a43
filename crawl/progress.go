package crawl

// Stage identifies the pipeline phase a progress event belongs to.
type Stage int

const (
	StageDiscover Stage = iota
	StageFetch
	StageFormat
	StageWrite
)

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	// ProgressStarted marks the beginning of a stage.
	ProgressStarted ProgressType = iota

	// ProgressCached reports a page served from the cache.
	ProgressCached

	// ProgressFetched reports a page rendered this run.
	ProgressFetched

	// ProgressFailed reports a page that was skipped after an error.
	ProgressFailed

	// ProgressDegraded reports a page aggregated with raw text after a
	// formatter failure.
	ProgressDegraded

	// ProgressFinished marks the end of a stage.
	ProgressFinished
)

// ProgressEvent reports progress during a pipeline run.
type ProgressEvent struct {
	Stage     Stage
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressFunc is a callback for reporting pipeline progress.
type ProgressFunc func(event ProgressEvent)
