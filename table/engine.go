package table

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lepinkainen/csvview/store"
)

// Envelope wraps one worker message with the parse run that produced
// it. Consumers drop envelopes from runs they no longer track.
type Envelope struct {
	RunID   uuid.UUID
	Payload any
}

// Options configures an engine.
type Options struct {
	ParseOptions

	// Token packs chunk rows for transfer; must match the store's.
	Token string

	// Watch reparses the file whenever it changes on disk.
	Watch bool
}

// Engine is the long-lived parsing worker. It owns the parsed table
// and everything derived from it; the UI shares no memory with it and
// talks exclusively through Messages and the request methods.
type Engine struct {
	path string
	opts Options
	log  *zap.Logger

	msgs chan Envelope
	reqs chan request

	// engine goroutine state, untouched from outside Run
	tbl     *Table
	filters []string
	run     uuid.UUID
}

type request interface{ req() }

type sumReq struct{ column string }
type addFilterReq struct{ name string }
type removeFilterReq struct{ name string }
type setHeaderReq struct{ on bool }

func (sumReq) req()          {}
func (addFilterReq) req()    {}
func (removeFilterReq) req() {}
func (setHeaderReq) req()    {}

// New creates an engine for path. Run must be started before any
// messages appear.
func New(path string, opts Options, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Token == "" {
		opts.Token = store.DefaultToken
	}
	opts.ParseOptions = opts.ParseOptions.withDefaults()
	return &Engine{
		path: path,
		opts: opts,
		log:  log,
		msgs: make(chan Envelope, 64),
		reqs: make(chan request, 16),
	}
}

// Messages is the engine's outbound channel. It is closed when Run
// returns, which is the consumer's teardown signal.
func (e *Engine) Messages() <-chan Envelope {
	return e.msgs
}

// Run parses the file, then serves requests until ctx is cancelled.
// With Watch enabled, file changes start fresh parse runs under new
// run IDs.
func (e *Engine) Run(ctx context.Context) error {
	defer close(e.msgs)

	var changes <-chan struct{}
	if e.opts.Watch {
		w, err := newWatcher(e.path, e.log)
		if err != nil {
			return fmt.Errorf("watch %s: %w", e.path, err)
		}
		defer w.Close()
		changes = w.Events()
	}

	if err := e.parse(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changes:
			e.log.Info("source changed, reparsing", zap.String("path", e.path))
			if err := e.parse(ctx); err != nil {
				return err
			}
		case r := <-e.reqs:
			e.serve(ctx, r)
		}
	}
}

// RequestSum asks for the sum of column; the result arrives as a
// SumColMsg. Like all request methods it never blocks the caller.
func (e *Engine) RequestSum(column string) { e.request(sumReq{column: column}) }

// AddFilter adds name to the filter set; the updated names arrive as
// an AddFilterMsg.
func (e *Engine) AddFilter(name string) { e.request(addFilterReq{name: name}) }

// RemoveFilter removes name from the filter set; the updated names
// arrive as a NamesMsg.
func (e *Engine) RemoveFilter(name string) { e.request(removeFilterReq{name: name}) }

// SetHeader forces the header interpretation and reparses.
func (e *Engine) SetHeader(on bool) { e.request(setHeaderReq{on: on}) }

func (e *Engine) request(r request) {
	select {
	case e.reqs <- r:
	default:
		e.log.Warn("engine busy, request dropped", zap.String("request", fmt.Sprintf("%T", r)))
	}
}

func (e *Engine) parse(ctx context.Context) error {
	e.run = uuid.New()
	e.log.Debug("parse run starting",
		zap.String("run", e.run.String()),
		zap.String("path", e.path))

	tbl, err := ParseChunks(e.path, e.opts.ParseOptions,
		func(columns []string, hasHeader bool) {
			e.emit(ctx, store.HeaderMsg{Columns: columns, HasHeader: hasHeader})
		},
		func(rows [][]string, progress float64) {
			e.emit(ctx, store.ChunkMsg{Rows: PackRows(rows, e.opts.Token)})
			e.emit(ctx, store.ParsingMsg{Progress: progress})
		})
	if err != nil {
		return fmt.Errorf("parse %s: %w", e.path, err)
	}

	e.tbl = tbl
	InferColumns(tbl, e.opts.ChunkSize/10)
	e.emit(ctx, store.ParsingMsg{Progress: 100})

	e.log.Debug("parse run complete",
		zap.String("run", e.run.String()),
		zap.Int("rows", len(tbl.Rows)),
		zap.Bool("header", tbl.HasHeader))
	return nil
}

func (e *Engine) serve(ctx context.Context, r request) {
	switch r := r.(type) {
	case sumReq:
		result, err := SumColumn(e.tbl, r.column)
		if err != nil {
			e.log.Warn("sum request failed", zap.String("column", r.column), zap.Error(err))
			return
		}
		e.emit(ctx, store.SumColMsg{Result: result})
	case addFilterReq:
		if !slices.Contains(e.filters, r.name) {
			e.filters = append(e.filters, r.name)
		}
		e.emit(ctx, store.AddFilterMsg{Names: slices.Clone(e.filters)})
	case removeFilterReq:
		e.filters = slices.DeleteFunc(e.filters, func(n string) bool { return n == r.name })
		e.emit(ctx, store.NamesMsg{Names: slices.Clone(e.filters)})
	case setHeaderReq:
		if r.on {
			e.opts.Header = HeaderOn
		} else {
			e.opts.Header = HeaderOff
		}
		if err := e.parse(ctx); err != nil {
			e.log.Error("reparse failed", zap.Error(err))
		}
	}
}

func (e *Engine) emit(ctx context.Context, payload any) {
	select {
	case e.msgs <- Envelope{RunID: e.run, Payload: payload}:
	case <-ctx.Done():
	}
}
