package app

import (
	"container/heap"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"cw/internal/count"
	"cw/internal/output"
	"cw/internal/siginfo"
)

type countFunc func(path string, rep count.Reporter) (count.Counts, error)

type runner struct {
	opts      Options
	strategy  count.Strategy
	countFile countFunc
	out       *output.Writer
	stderr    *lockedWriter
	log       *slog.Logger
	res       Result
	writeErr  error
}

func DefaultThreads() int {
	n := runtime.NumCPU()
	if n > 8 {
		return 8
	}
	if n < 1 {
		return 1
	}
	return n
}

// Run counts every path in opts.Paths (or stdin when UseStdin is set and no
// paths were given) and writes one record per input in input order.
// Per-file failures are reported on Stderr and reflected in Result.Failed;
// the returned error is reserved for stdin failures and output failures.
func Run(opts Options) (Result, error) {
	r, err := newRunner(opts)
	if err != nil {
		return Result{}, err
	}
	return r.run()
}

func newRunner(opts Options) (*runner, error) {
	opts.Request = opts.Request.Normalize()
	if opts.Threads <= 0 {
		opts.Threads = DefaultThreads()
	}
	if opts.Format == "" {
		opts.Format = output.FormatText
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	out, err := output.NewWriter(opts.Stdout, opts.Format, opts.Request)
	if err != nil {
		return nil, &ArgErr{Msg: err.Error()}
	}
	strategy := count.Select(opts.Request)
	return &runner{
		opts:      opts,
		strategy:  strategy,
		countFile: strategy.CountFile,
		out:       out,
		stderr:    &lockedWriter{w: opts.Stderr},
		log:       log,
		res:       Result{Strategy: strategy, Total: count.New(count.TotalLabel)},
	}, nil
}

func (r *runner) run() (Result, error) {
	r.log.Debug("strategy selected", "strategy", r.strategy.String(), "request", r.opts.Request)

	if len(r.opts.Paths) == 0 {
		if !r.opts.UseStdin {
			return r.res, r.out.Flush()
		}
		if err := r.countStdin(); err != nil {
			return r.res, err
		}
		return r.res, r.out.Flush()
	}

	r.res.Inputs = len(r.opts.Paths)
	workers := min(len(r.opts.Paths), r.opts.Threads)
	if workers <= 1 {
		r.sequential()
	} else {
		r.parallel(workers)
	}
	if len(r.opts.Paths) > 1 {
		r.write(r.out.Total(r.res.Total))
	}
	r.write(r.out.Flush())
	return r.res, r.writeErr
}

func (r *runner) reporter() count.Reporter {
	return &progress{listener: siginfo.NewListener(), out: r.stderr, req: r.opts.Request}
}

func (r *runner) countStdin() error {
	r.res.Inputs = 1
	var c count.Counts
	if err := r.strategy.Count(r.opts.Stdin, &c, r.reporter()); err != nil {
		r.res.Failed++
		return err
	}
	r.res.Processed++
	r.res.Total.Add(c)
	return r.out.Counts(c)
}

func (r *runner) sequential() {
	rep := r.reporter()
	for i, p := range r.opts.Paths {
		c, err := r.countFile(p, rep)
		r.emit(ordered{index: i, counts: c, err: err})
	}
}

// parallel lets workers claim indices from a shared cursor and restores
// input order on this goroutine with a min-heap keyed by index.
func (r *runner) parallel(workers int) {
	r.log.Debug("starting workers", "workers", workers, "files", len(r.opts.Paths))
	paths := r.opts.Paths
	results := make(chan ordered, workers)
	var cursor atomic.Int64
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			rep := r.reporter()
			for {
				i := int(cursor.Add(1) - 1)
				if i >= len(paths) {
					return nil
				}
				c, err := r.countFile(paths[i], rep)
				results <- ordered{index: i, counts: c, err: err}
			}
		})
	}
	go func() {
		_ = g.Wait()
		close(results)
	}()

	pending := &orderedHeap{}
	next := 0
	for res := range results {
		heap.Push(pending, res)
		for pending.ready(next) {
			r.emit(heap.Pop(pending).(ordered))
			next++
		}
	}
}

func (r *runner) emit(o ordered) {
	path := r.opts.Paths[o.index]
	if o.err != nil {
		r.res.Failed++
		fe := &FileError{Path: path, Err: o.err}
		r.log.Debug("count failed", "path", path, "err", o.err)
		_, _ = io.WriteString(r.stderr, fe.Error()+"\n")
		return
	}
	r.res.Processed++
	r.res.Total.Add(o.counts)
	r.write(r.out.Counts(o.counts))
}

// write keeps the first output error; counting carries on so workers drain.
func (r *runner) write(err error) {
	if err != nil && r.writeErr == nil {
		r.writeErr = err
	}
}
