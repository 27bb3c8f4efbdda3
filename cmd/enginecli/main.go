// enginecli is a thin flag-driven front end to pkg/engine. It is not a UCI or console
// protocol implementation -- those remain out of scope; it exists so the engine ships
// with at least one runnable entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/haktanpolatt/Mergen/pkg/engine"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(1, 0, 0)

var (
	position = flag.String("fen", "", "position to search, in FEN (defaults to the standard start position)")
	depth    = flag.Int("depth", 6, "search depth in plies")
	maxMS    = flag.Float64("movetime", 0, "search time budget in milliseconds (overrides -depth if set)")
	threads  = flag.Int("threads", 1, "worker threads for Lazy SMP search")
	hashMB   = flag.Int("hash", 64, "transposition table size in MB")
	noise    = flag.Uint("noise", 0, "evaluation noise in \"millipawns\" (zero if deterministic)")
	config   = flag.String("config", "", "optional TOML config file overriding the flags above")
	evalOnly = flag.Bool("eval", false, "print the static evaluation instead of searching")
	showVer  = flag.Bool("version", false, "print the version and exit")
)

// fileConfig mirrors the flag set for an optional TOML config file.
type fileConfig struct {
	FEN      string  `toml:"fen"`
	Depth    int     `toml:"depth"`
	MoveTime float64 `toml:"movetime"`
	Threads  int     `toml:"threads"`
	HashMB   int     `toml:"hash"`
	Noise    uint    `toml:"noise"`
}

func main() {
	flag.Parse()
	ctx := context.Background()

	if *showVer {
		fmt.Println(version)
		return
	}

	fen := *position
	d, mt, t, hash, n := *depth, *maxMS, *threads, *hashMB, *noise

	if *config != "" {
		var cfg fileConfig
		if _, err := toml.DecodeFile(*config, &cfg); err != nil {
			logw.Exitf(ctx, "failed to read config %v: %v", *config, err)
		}
		if cfg.FEN != "" {
			fen = cfg.FEN
		}
		if cfg.Depth > 0 {
			d = cfg.Depth
		}
		if cfg.MoveTime > 0 {
			mt = cfg.MoveTime
		}
		if cfg.Threads > 0 {
			t = cfg.Threads
		}
		if cfg.HashMB > 0 {
			hash = cfg.HashMB
		}
		if cfg.Noise > 0 {
			n = cfg.Noise
		}
	}

	e := engine.New("enginecli", engine.WithHashSizeMB(hash), engine.WithNoise(int(n)))
	if fen == "" {
		fen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	}

	switch {
	case *evalOnly:
		score, err := e.EvaluateFEN(fen)
		if err != nil {
			logw.Exitf(ctx, "invalid position: %v", err)
		}
		fmt.Println(score)

	case mt > 0 && t > 1:
		move, depth, elapsed, nodes, err := e.FindBestMoveParallelTimed(fen, mt, t)
		if err != nil {
			logw.Exitf(ctx, "search failed: %v", err)
		}
		fmt.Printf("%v %v %v %v\n", move, depth, elapsed.Round(time.Millisecond), nodes)

	case mt > 0:
		move, depth, elapsed, err := e.FindBestMoveTimed(fen, mt)
		if err != nil {
			logw.Exitf(ctx, "search failed: %v", err)
		}
		fmt.Printf("%v %v %v\n", move, depth, elapsed.Round(time.Millisecond))

	case t > 1:
		move, err := e.FindBestMoveParallel(fen, d, t)
		if err != nil {
			logw.Exitf(ctx, "search failed: %v", err)
		}
		fmt.Println(move)

	default:
		move, err := e.FindBestMove(fen, d)
		if err != nil {
			logw.Exitf(ctx, "search failed: %v", err)
		}
		fmt.Println(move)
	}

	os.Exit(0)
}
