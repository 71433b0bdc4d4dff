// Command bench replays a gzip-compressed editing trace against one of
// the four integration algorithms and reports throughput and convergence
// (§4.12). It is diagnostic tooling, not part of the core's error surface.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/sanity-io/litter"

	"github.com/textloom/seqcrdt/internal/bench"
	"github.com/textloom/seqcrdt/internal/config"
	"github.com/textloom/seqcrdt/internal/logging"
	"github.com/textloom/seqcrdt/seq/algorithm"
)

func main() {
	fixturePath := flag.String("fixture", "", "path to a gzip-compressed benchmark fixture")
	algoName := flag.String("algorithm", "", "yjsMod, yjs, automerge or sync9 (overrides -config)")
	configPath := flag.String("config", "", "path to a YAML config file")
	verbose := flag.Bool("verbose", false, "dump the replay result (including the final content) with litter")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Read(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *algoName != "" {
		cfg.Algorithm = *algoName
	}
	logging.InitDefault(cfg.Node.ID)

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: bench -fixture <path> [-algorithm yjsMod|yjs|automerge|sync9]")
		os.Exit(2)
	}

	fixture, err := bench.Load(*fixturePath)
	if err != nil {
		slog.Error("loading fixture failed", "error", err)
		os.Exit(1)
	}

	algo, ok := algorithm.Resolve[rune](cfg.Algorithm)
	if !ok {
		slog.Error("unknown algorithm", "algorithm", cfg.Algorithm)
		os.Exit(1)
	}

	result, err := bench.Replay(fixture, algo)
	if err != nil {
		slog.Error("replay failed", "error", err)
		os.Exit(1)
	}

	slog.Info("replay complete",
		"algorithm", result.Algorithm,
		"txns", result.Agents,
		"patches", result.Patches,
		"ops", result.Ops,
		"elapsed", result.Elapsed,
		"converged", result.Converged,
	)

	if !result.Converged {
		slog.Warn("final content diverged from fixture.endContent",
			"got_len", len(result.Got),
			"want_len", len(result.Want),
		)
	}
	if *verbose {
		fmt.Fprintln(os.Stderr, litter.Sdump(result))
	}
}
