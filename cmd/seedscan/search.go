package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/hupe1980/seedscan"
	"github.com/hupe1980/seedscan/codec"
	promcollector "github.com/hupe1980/seedscan/metric/prometheus"
)

type searchFlags struct {
	queryFile string
	must      []string
	should    []string
	mustNot   []string
	deck      string
	stake     string

	threads    int
	batchChars int
	start      uint64
	end        uint64
	seeds      []string
	seedFile   string
	random     uint64
	source     uint64
	single     string

	cutoff     int
	autoCutoff bool
	noChaining bool

	output    string
	format    string
	compress  string
	logLevel  string
	logFormat string

	metricsAddr string
	rate        float64
	memory      int64
}

func newSearchCmd() *cobra.Command {
	var f searchFlags
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search seeds and stream the matches as CSV",
		Long: `Search seeds matching a query and stream every match as a CSV row
(Seed, TotalScore, one column per SHOULD clause).

Clauses are read from --query (JSON, "-" for stdin) and from the clause
flags, written as TYPE:VALUE[|VALUE...][@ANTES][#SCORE], for example
'Voucher:Telescope@1' or 'Tag:Negative Tag|Investment Tag@1-4#2'.

SEEDSCAN_* environment variables provide defaults for threads, batch chars,
log level, memory limit, rate limit and stage timeout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSearch(cmd.Context(), cmd, &f)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.queryFile, "query", "q", "", "JSON query file, - for stdin")
	fs.StringArrayVar(&f.must, "must", nil, "MUST clause (repeatable)")
	fs.StringArrayVar(&f.should, "should", nil, "SHOULD clause (repeatable)")
	fs.StringArrayVar(&f.mustNot, "must-not", nil, "MUST-NOT clause (repeatable)")
	fs.StringVar(&f.deck, "deck", "", "deck, overrides the query file")
	fs.StringVar(&f.stake, "stake", "", "stake, overrides the query file")

	fs.IntVarP(&f.threads, "threads", "t", 0, "worker count (default: number of CPUs)")
	fs.IntVar(&f.batchChars, "batch-chars", 0, "characters enumerated per sequential batch (default 3)")
	fs.Uint64Var(&f.start, "start", 0, "first sequential batch")
	fs.Uint64Var(&f.end, "end", 0, "end of the sequential batch range (exclusive, 0 = last)")
	fs.StringSliceVar(&f.seeds, "seed", nil, "seeds to search instead of the sequential space")
	fs.StringVar(&f.seedFile, "seed-file", "", "file with one seed per line, - for stdin")
	fs.Uint64Var(&f.random, "random", 0, "search this many random seeds")
	fs.Uint64Var(&f.source, "random-source", 0, "source of the random seeds (default: current time)")
	fs.StringVar(&f.single, "single", "", "search a single seed")

	fs.IntVar(&f.cutoff, "cutoff", 0, "minimum score of reported seeds")
	fs.BoolVar(&f.autoCutoff, "auto-cutoff", false, "only report seeds scoring at least the best so far")
	fs.BoolVar(&f.noChaining, "no-chaining", false, "always run the query as one composite stage")

	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fs.StringVar(&f.format, "format", "csv", "output format: csv or jsonl")
	fs.StringVar(&f.compress, "compress", "none", "output compression: none, zstd or lz4")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "text", "log format: text or json")

	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	fs.Float64Var(&f.rate, "rate", 0, "maximum batches per second (0 = unlimited)")
	fs.Int64Var(&f.memory, "memory-limit", 0, "worker scratch memory limit in bytes (0 = unlimited)")
	return cmd
}

func runSearch(ctx context.Context, cmd *cobra.Command, f *searchFlags) error {
	q, err := buildQuery(cmd.InOrStdin(), f)
	if err != nil {
		return err
	}

	cfg, err := seedscan.LoadConfig()
	if err != nil {
		return err
	}
	opts := cfg.Options()

	level := cfg.LogLevel
	if f.logLevel != "" {
		if err := level.UnmarshalText([]byte(f.logLevel)); err != nil {
			return fmt.Errorf("log level: %w", err)
		}
	}
	var logger *seedscan.Logger
	switch f.logFormat {
	case "text", "":
		logger = seedscan.NewTextLogger(cmd.ErrOrStderr(), level)
	case "json":
		logger = seedscan.NewJSONLogger(cmd.ErrOrStderr(), level)
	default:
		return fmt.Errorf("unknown log format %q", f.logFormat)
	}
	opts = append(opts, seedscan.WithLogger(logger))

	flags := cmd.Flags()
	if flags.Changed("threads") {
		opts = append(opts, seedscan.WithThreads(f.threads))
	}
	if flags.Changed("batch-chars") {
		opts = append(opts, seedscan.WithBatchChars(f.batchChars))
	}
	if flags.Changed("rate") {
		opts = append(opts, seedscan.WithRateLimit(f.rate))
	}
	if flags.Changed("memory-limit") {
		opts = append(opts, seedscan.WithMemoryLimit(f.memory))
	}
	opts = append(opts, seedscan.WithBatchRange(f.start, f.end))

	seeds := f.seeds
	if f.seedFile != "" {
		more, err := readSeedFile(cmd.InOrStdin(), f.seedFile)
		if err != nil {
			return err
		}
		seeds = append(seeds, more...)
	}
	if len(seeds) > 0 {
		opts = append(opts, seedscan.WithSeeds(seeds...))
	}
	if f.random > 0 {
		source := f.source
		if !flags.Changed("random-source") {
			source = uint64(time.Now().UnixNano())
		}
		opts = append(opts, seedscan.WithRandomSeeds(f.random, source))
	}
	if f.single != "" {
		opts = append(opts, seedscan.WithSingleSeed(f.single))
	}

	if f.autoCutoff {
		opts = append(opts, seedscan.WithAutoCutoff(f.cutoff))
	} else {
		opts = append(opts, seedscan.WithCutoff(f.cutoff))
	}
	opts = append(opts, seedscan.WithChaining(!f.noChaining))

	if f.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, seedscan.WithMetricsCollector(promcollector.New(reg)))
		srv := &http.Server{
			Addr:              f.metricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "addr", f.metricsAddr, "error", err)
			}
		}()
		defer srv.Close()
	}

	comp, err := codec.ParseCompression(f.compress)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if f.output != "" && f.output != "-" {
		file, err := os.Create(f.output)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	// The writer needs the compiled labels; no result arrives before Start.
	var (
		w        codec.ResultWriter
		writeErr error
	)
	opts = append(opts,
		seedscan.WithResultHandler(func(r seedscan.Result) {
			if writeErr != nil {
				return
			}
			writeErr = w.Write(codec.Record{Seed: r.Seed, Score: r.Score, Tallies: r.Tallies})
		}),
		seedscan.WithProgressHandler(func(p seedscan.Progress) {
			logger.Info("progress",
				"batches", fmt.Sprintf("%d/%d", p.BatchesCompleted, p.TotalBatches),
				"seeds", p.SeedsSearched,
				"seeds_per_ms", fmt.Sprintf("%.1f", p.SeedsPerMillisecond),
			)
		}),
	)

	s, err := seedscan.New(q, opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	w, err = codec.NewResultWriter(f.format, out, s.Labels(), codec.WithCompression(comp))
	if err != nil {
		return err
	}
	if err := s.Start(); err != nil {
		return err
	}

	var runErr error
	select {
	case <-s.Done():
		runErr = s.Wait()
	case <-ctx.Done():
		// Interrupted: keep what was found so far.
		_ = s.Close()
	}
	if err := w.Close(); err != nil && writeErr == nil {
		writeErr = err
	}
	return errors.Join(runErr, writeErr)
}

func buildQuery(stdin io.Reader, f *searchFlags) (*seedscan.Query, error) {
	q := &seedscan.Query{}
	if f.queryFile != "" {
		var (
			data []byte
			err  error
		)
		if f.queryFile == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(f.queryFile)
		}
		if err != nil {
			return nil, fmt.Errorf("query: %w", err)
		}
		if err := (codec.GoJSON{Strict: true}).Unmarshal(data, q); err != nil {
			return nil, fmt.Errorf("query %s: %w", f.queryFile, err)
		}
	}

	for _, set := range []struct {
		flags []string
		dst   *[]seedscan.Clause
	}{
		{f.must, &q.Must},
		{f.should, &q.Should},
		{f.mustNot, &q.MustNot},
	} {
		cs, err := parseClauses(set.flags)
		if err != nil {
			return nil, err
		}
		*set.dst = append(*set.dst, cs...)
	}
	if f.deck != "" {
		q.Deck = f.deck
	}
	if f.stake != "" {
		q.Stake = f.stake
	}
	return q, nil
}

func readSeedFile(stdin io.Reader, name string) ([]string, error) {
	r := stdin
	if name != "-" {
		file, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		r = file
	}
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}
