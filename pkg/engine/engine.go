// Package engine exposes the chess analysis engine's public surface: given a FEN
// position, return a best move and/or a numeric evaluation. It is the only package
// callers outside this module need to import.
package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/haktanpolatt/Mergen/pkg/board"
	"github.com/haktanpolatt/Mergen/pkg/board/fen"
	"github.com/haktanpolatt/Mergen/pkg/eval"
	"github.com/haktanpolatt/Mergen/pkg/search"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(1, 0, 0)

var (
	// ErrInvalidFEN is returned when a position string cannot be parsed.
	ErrInvalidFEN = errors.New("engine: invalid FEN")
	// ErrInvalidDepth is returned for a non-positive search depth.
	ErrInvalidDepth = errors.New("engine: depth must be positive")
	// ErrInvalidThreadCount is returned for a non-positive thread count.
	ErrInvalidThreadCount = errors.New("engine: thread count must be positive")
)

// Engine is the public search API. It owns a Zobrist table, fixed for its lifetime,
// and a transposition table that may be resized at runtime (destructively, and only
// between searches). Two Engines never share state; construct one per concurrent
// caller that wants independent tables, or share an *Engine (its TT and Zobrist table
// are safe for concurrent reads/writes during Lazy SMP search).
type Engine struct {
	name string
	eval eval.Evaluator
	zt   *board.ZobristTable
	seed int64

	mu       sync.Mutex
	tt       search.TranspositionTable
	hashSize int
	noise    int
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithEvaluator overrides the default material Evaluator.
func WithEvaluator(e eval.Evaluator) Option {
	return func(en *Engine) { en.eval = e }
}

// WithZobristSeed overrides the default (zero) Zobrist random seed.
func WithZobristSeed(seed int64) Option {
	return func(en *Engine) { en.zt = board.NewZobristTable(seed) }
}

// WithHashSizeMB sets the initial transposition table size, in megabytes.
func WithHashSizeMB(mb int) Option {
	return func(en *Engine) { en.hashSize = mb }
}

// WithNoise adds up to millipawns of symmetric random jitter to leaf evaluations,
// seeded deterministically so repeated searches of the same position are still
// reproducible. Useful for avoiding an engine always playing out a repeated game
// against itself identically; a zero value (the default) disables noise.
func WithNoise(millipawns int) Option {
	return func(en *Engine) { en.noise = millipawns }
}

// New returns a ready-to-use Engine, defaulting to the material Evaluator and a
// DefaultTableSizeMB transposition table.
func New(name string, opts ...Option) *Engine {
	e := &Engine{
		name:     name,
		eval:     eval.Material{},
		zt:       board.NewZobristTable(0),
		seed:     0,
		hashSize: search.DefaultTableSizeMB,
	}
	for _, fn := range opts {
		fn(e)
	}
	e.tt = search.NewTranspositionTable(context.Background(), uint64(e.hashSize))

	logw.Infof(context.Background(), "initialized engine %v %v, hash=%vMB, noise=%vmp", e.name, version, e.hashSize, e.noise)
	return e
}

// SetNoise adjusts the evaluation jitter applied by subsequent searches; see
// WithNoise. Safe to call between searches on a live Engine.
func (e *Engine) SetNoise(millipawns int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.noise = millipawns
}

// evaluator returns the Evaluator subsequent searches should use: the configured
// Evaluator directly, or wrapped with eval.Noise if noise jitter is enabled.
func (e *Engine) evaluator() eval.Evaluator {
	e.mu.Lock()
	noise := e.noise
	e.mu.Unlock()

	if noise <= 0 {
		return e.eval
	}
	return eval.NewNoise(e.eval, noise, e.seed)
}

// SetHashSize resizes the transposition table to approximately mb megabytes. Per the
// resource-ownership contract, resizing discards the table's current contents;
// callers MUST NOT call this while a search is in progress on this Engine.
func (e *Engine) SetHashSize(mb int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if mb <= 0 {
		mb = search.DefaultTableSizeMB
	}
	e.hashSize = mb
	e.tt = search.NewTranspositionTable(context.Background(), uint64(mb))
}

// GetCPUCores returns the number of logical CPUs available to the process -- the
// natural upper bound on a useful thread count for the parallel search operations.
func GetCPUCores() int {
	return runtime.NumCPU()
}

func (e *Engine) decode(position string) (*board.Position, error) {
	pos, err := fen.Decode(position)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	return pos, nil
}

func (e *Engine) newContext() *search.Context {
	e.mu.Lock()
	tt := e.tt
	e.mu.Unlock()
	return search.NewContext(e.zt, tt)
}

// FindBestMove searches position to depth plies (stopping at a shallower depth once a
// forced mate is found) and returns the best move in UCI notation, or the null-move
// sentinel "0000" if the position has no legal moves.
func (e *Engine) FindBestMove(position string, depth int) (string, error) {
	if depth <= 0 {
		return "", ErrInvalidDepth
	}
	pos, err := e.decode(position)
	if err != nil {
		return "", err
	}

	sctx := e.newContext()
	s := search.NewSearcher(e.evaluator())
	pv := search.IterativeDeepen(context.Background(), s, sctx, pos, depth, time.Now(), 0)
	return string(pv.BestMove()), nil
}

// FindBestMoveTimed searches position under a soft wall-clock budget of maxMS
// milliseconds, returning the best move found, the depth actually completed, and the
// elapsed search time.
func (e *Engine) FindBestMoveTimed(position string, maxMS float64) (string, int, time.Duration, error) {
	pos, err := e.decode(position)
	if err != nil {
		return "", 0, 0, err
	}

	budget := time.Duration(maxMS * float64(time.Millisecond))
	start := time.Now()

	sctx := e.newContext()
	sctx.SetDeadline(start.Add(budget))

	s := search.NewSearcher(e.evaluator())
	pv := search.IterativeDeepen(context.Background(), s, sctx, pos, 0, start, budget)
	return string(pv.BestMove()), pv.Depth, time.Since(start), nil
}

// FindBestMoveParallel searches position to depth plies (stopping at a shallower depth
// once a forced mate is found) using a Lazy SMP team of threads, clamped per
// search.Parallel.ThreadCount.
func (e *Engine) FindBestMoveParallel(position string, depth, threads int) (string, error) {
	if depth <= 0 {
		return "", ErrInvalidDepth
	}
	if threads <= 0 {
		return "", ErrInvalidThreadCount
	}
	pos, err := e.decode(position)
	if err != nil {
		return "", err
	}

	sctx := e.newContext()
	par := search.NewParallel(e.evaluator(), threads)
	pv := search.IterativeDeepen(context.Background(), par, sctx, pos, depth, time.Now(), 0)
	return string(pv.BestMove()), nil
}

// FindBestMoveParallelTimed searches position under a wall-clock budget using a Lazy
// SMP team, returning the best move, depth completed, elapsed time and the number of
// nodes the team visited in the last iteration it started (the shared Context's node
// counter is reset at the start of every iteration).
func (e *Engine) FindBestMoveParallelTimed(position string, maxMS float64, threads int) (string, int, time.Duration, uint64, error) {
	if threads <= 0 {
		return "", 0, 0, 0, ErrInvalidThreadCount
	}
	pos, err := e.decode(position)
	if err != nil {
		return "", 0, 0, 0, err
	}

	budget := time.Duration(maxMS * float64(time.Millisecond))
	start := time.Now()

	sctx := e.newContext()
	sctx.SetDeadline(start.Add(budget))

	par := search.NewParallel(e.evaluator(), threads)
	pv := search.IterativeDeepen(context.Background(), par, sctx, pos, 0, start, budget)
	return string(pv.BestMove()), pv.Depth, time.Since(start), sctx.Nodes(), nil
}

// EvaluateFEN returns the static evaluation of position, positive favoring White, with
// no search involved -- a direct call to the configured Evaluator.
func (e *Engine) EvaluateFEN(position string) (float64, error) {
	pos, err := e.decode(position)
	if err != nil {
		return 0, err
	}
	return float64(e.eval.Evaluate(pos)), nil
}

// GetSearchInfo searches position to maxDepth and formats the result as
// "depth score best_move".
func (e *Engine) GetSearchInfo(position string, maxDepth int) (string, error) {
	if maxDepth <= 0 {
		return "", ErrInvalidDepth
	}
	pos, err := e.decode(position)
	if err != nil {
		return "", err
	}

	sctx := e.newContext()
	s := search.NewSearcher(e.evaluator())
	pv := search.IterativeDeepen(context.Background(), s, sctx, pos, maxDepth, time.Now(), 0)
	return fmt.Sprintf("%v %v %v", pv.Depth, pv.Score, pv.BestMove()), nil
}
