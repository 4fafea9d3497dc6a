// Package download runs tile tasks one after another and routes the fetched bytes
// into a Sink (an in-memory archive or a directory tree).
//
// A tile whose fetch or stream fails is skipped: it produces no output entry, is
// recorded in the Report, and the next task starts. Per-tile failures are never
// returned as the run's error.
package download

import (
	"context"
	"fmt"

	"github.com/glorpus-work/tilegrab/internal/logger"
	"github.com/glorpus-work/tilegrab/pkg/tiles"
)

// Event represents a simple progress notification.
type Event struct {
	Phase string // fetching|stored|failed|skipped|done
	Index int    // zero-based task index
	Total int
	Tile  tiles.ID
	Err   error
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

// Orchestrator processes download tasks strictly in order.
type Orchestrator struct {
	Fetcher Fetcher
	Scripts Scripts // optional
	Hooks   Hooks
}

// New creates an Orchestrator. scripts may be nil.
func New(fetcher Fetcher, scripts Scripts, hooks Hooks) *Orchestrator {
	return &Orchestrator{Fetcher: fetcher, Scripts: scripts, Hooks: hooks}
}

// Run fetches every task in order and finalizes sink once all tasks are done.
// Task i+1 starts only after task i has settled. The returned error is reserved for
// failures of the run itself: a missing fetcher, a sink that cannot be prepared or
// finalized, or ctx being cancelled between tasks.
func (o *Orchestrator) Run(ctx context.Context, tasks []tiles.Task, sink Sink) (Result, Report, error) {
	report := Report{Total: len(tasks)}
	if o.Fetcher == nil {
		return Result{}, report, fmt.Errorf("tile fetcher is not configured")
	}
	if err := sink.Prepare(ctx, tasks); err != nil {
		return Result{}, report, fmt.Errorf("failed to prepare output: %w", err)
	}

	for i, task := range tasks {
		if err := ctx.Err(); err != nil {
			return Result{}, report, err
		}

		if o.skipByScript(ctx, task) {
			report.Skipped = append(report.Skipped, task.Tile)
			emit(o.Hooks, Event{Phase: "skipped", Index: i, Total: len(tasks), Tile: task.Tile})
			continue
		}

		emit(o.Hooks, Event{Phase: "fetching", Index: i, Total: len(tasks), Tile: task.Tile})
		if err := o.runOne(ctx, task, sink); err != nil {
			failure := Failure{Tile: task.Tile, URL: task.URL, Err: fmt.Errorf("%w: %w", ErrFetch, err)}
			report.Failed = append(report.Failed, failure)
			logger.Warn("Skipping tile", logger.Fields{"tile": task.Tile.String(), "url": task.URL, "error": err.Error()})
			emit(o.Hooks, Event{Phase: "failed", Index: i, Total: len(tasks), Tile: task.Tile, Err: failure.Err})
			continue
		}

		report.Succeeded = append(report.Succeeded, task.Tile)
		logger.Debug("Stored tile", logger.Fields{"tile": task.Tile.String(), "path": task.Path()})
		emit(o.Hooks, Event{Phase: "stored", Index: i, Total: len(tasks), Tile: task.Tile})
		o.afterStore(ctx, task)
	}

	result, err := sink.Finalize(ctx)
	if err != nil {
		return Result{}, report, fmt.Errorf("failed to finalize output: %w", err)
	}
	emit(o.Hooks, Event{Phase: "done", Total: len(tasks)})
	logger.Info("Download finished", logger.Fields{
		"total": report.Total, "stored": len(report.Succeeded),
		"failed": len(report.Failed), "skipped": len(report.Skipped),
	})
	return result, report, nil
}

// runOne fetches one tile and hands the stream to the sink.
func (o *Orchestrator) runOne(ctx context.Context, task tiles.Task, sink Sink) error {
	body, err := o.Fetcher.Fetch(ctx, task.URL)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()
	return sink.Put(ctx, task, body)
}

// Script errors are logged and otherwise ignored.
func (o *Orchestrator) skipByScript(ctx context.Context, task tiles.Task) bool {
	if o.Scripts == nil {
		return false
	}
	skip, err := o.Scripts.BeforeFetch(ctx, task)
	if err != nil {
		logger.Warn("pre-fetch script failed", logger.Fields{"tile": task.Tile.String(), "error": err.Error()})
		return false
	}
	return skip
}

func (o *Orchestrator) afterStore(ctx context.Context, task tiles.Task) {
	if o.Scripts == nil {
		return
	}
	if err := o.Scripts.AfterStore(ctx, task); err != nil {
		logger.Warn("post-fetch script failed", logger.Fields{"tile": task.Tile.String(), "error": err.Error()})
	}
}
