package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"mad-life/internal/core"
	"mad-life/internal/render"
	rng "mad-life/pkg/core"
	"mad-life/pkg/hashlife"
	"mad-life/pkg/pattern"
	"mad-life/pkg/rule"
)

// runOptions configures a headless run. Every field can be set in the YAML
// file named by --config or by the flag of the same name.
type runOptions struct {
	Pattern     string  `yaml:"pattern"`
	Soup        string  `yaml:"soup"`
	Density     float64 `yaml:"density"`
	Seed        int64   `yaml:"seed"`
	Rule        string  `yaml:"rule"`
	Step        uint    `yaml:"step"`
	Generations uint64  `yaml:"generations"`
	NodeLimit   int     `yaml:"node_limit"`
	MetricsAddr string  `yaml:"metrics_addr"`
	Serve       bool    `yaml:"serve"`
	ASCII       string  `yaml:"ascii"`
	Out         string  `yaml:"out"`
}

func defaultRunOptions() runOptions {
	return runOptions{Soup: "64,64", Density: 0.3, Seed: 42, NodeLimit: 1 << 22}
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := defaultRunOptions()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load a pattern or random soup and advance it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if root.configPath != "" {
				if err := opts.mergeFile(cmd, root.configPath); err != nil {
					return err
				}
			}
			return run(cmd.Context(), cmd.OutOrStdout(), root.logger, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.Pattern, "pattern", opts.Pattern, "RLE or plaintext pattern file")
	f.StringVar(&opts.Soup, "soup", opts.Soup, "random soup size as w,h when no pattern is given")
	f.Float64Var(&opts.Density, "density", opts.Density, "live cell density of the soup")
	f.Int64Var(&opts.Seed, "seed", opts.Seed, "soup seed")
	f.StringVar(&opts.Rule, "rule", opts.Rule, "rule string or preset name; overrides the pattern's rule")
	f.UintVar(&opts.Step, "step", opts.Step, "advance 2^step generations per step")
	f.Uint64Var(&opts.Generations, "generations", opts.Generations, "number of generations to run")
	f.IntVar(&opts.NodeLimit, "node-limit", opts.NodeLimit, "collect garbage above this many nodes, 0 to disable")
	f.StringVar(&opts.MetricsAddr, "metrics-addr", opts.MetricsAddr, "serve prometheus metrics on this address")
	f.BoolVar(&opts.Serve, "serve", opts.Serve, "keep serving metrics after the run until interrupted")
	f.StringVar(&opts.ASCII, "ascii", opts.ASCII, "print a WxH window around the origin")
	f.StringVar(&opts.Out, "out", opts.Out, "write the final pattern as RLE to this file, - for stdout")
	return cmd
}

// mergeFile applies values from the YAML file for every flag not set on the
// command line.
func (o *runOptions) mergeFile(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WithStack(err)
	}
	file := *o
	if err := yaml.Unmarshal(data, &file); err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}
	changed := cmd.Flags().Changed
	keep := func(name string, apply func()) {
		if !changed(name) {
			apply()
		}
	}
	keep("pattern", func() { o.Pattern = file.Pattern })
	keep("soup", func() { o.Soup = file.Soup })
	keep("density", func() { o.Density = file.Density })
	keep("seed", func() { o.Seed = file.Seed })
	keep("rule", func() { o.Rule = file.Rule })
	keep("step", func() { o.Step = file.Step })
	keep("generations", func() { o.Generations = file.Generations })
	keep("node-limit", func() { o.NodeLimit = file.NodeLimit })
	keep("metrics-addr", func() { o.MetricsAddr = file.MetricsAddr })
	keep("serve", func() { o.Serve = file.Serve })
	keep("ascii", func() { o.ASCII = file.ASCII })
	keep("out", func() { o.Out = file.Out })
	return nil
}

func run(ctx context.Context, out io.Writer, logger *zap.Logger, opts runOptions) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	p, err := loadPattern(opts)
	if err != nil {
		return err
	}

	u, err := hashlife.New(
		hashlife.WithStep(opts.Step),
		hashlife.WithNodeLimit(opts.NodeLimit),
		hashlife.WithLogger(logger.Named("hashlife")),
	)
	if err != nil {
		return err
	}
	if err := p.Apply(u); err != nil {
		return err
	}
	if opts.Rule != "" {
		r, err := rule.Parse(opts.Rule)
		if err != nil {
			return err
		}
		if err := u.SetRule(r); err != nil {
			return err
		}
	}
	logger.Info("pattern loaded",
		zap.String("name", p.Name),
		zap.Stringer("rule", u.Rule()),
		zap.Uint64("population", u.Population()),
	)

	collector := hashlife.NewCollector("mad_life")
	collector.Observe(u)
	if opts.MetricsAddr != "" {
		stop := serveMetrics(opts.MetricsAddr, collector, logger)
		defer stop()
	}

	start := time.Now()
	chunk := uint64(1) << opts.Step
	for remaining := opts.Generations; remaining > 0; {
		n := min(remaining, chunk)
		if err := u.Advance(ctx, n); err != nil {
			return err
		}
		remaining -= n
		collector.Observe(u)
	}
	logger.Info("run finished",
		zap.Uint64("generation", u.Generation()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("nodes", u.Stats().Nodes),
	)

	final := pattern.FromCells(u.Cells())
	final.Name = p.Name
	final.Rule = lo.ToPtr(u.Rule())
	if err := report(out, u, final, opts.ASCII); err != nil {
		return err
	}
	if opts.Out != "" {
		if err := writePattern(out, opts.Out, final); err != nil {
			return err
		}
	}

	if opts.MetricsAddr != "" && opts.Serve {
		logger.Info("serving metrics until interrupted", zap.String("addr", opts.MetricsAddr))
		<-ctx.Done()
	}
	return nil
}

func loadPattern(opts runOptions) (*pattern.Pattern, error) {
	if opts.Pattern != "" {
		data, err := os.ReadFile(opts.Pattern)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		p, err := pattern.Parse(data)
		if err != nil {
			return nil, errors.Wrapf(err, "loading %s", opts.Pattern)
		}
		return p, nil
	}
	w, h, err := parseSize(opts.Soup, ",")
	if err != nil {
		return nil, errors.Wrap(err, "--soup")
	}
	p := pattern.Soup(rng.NewRNG(opts.Seed), w, h, opts.Density)
	p.Name = fmt.Sprintf("soup %dx%d seed %d", w, h, opts.Seed)
	return p, nil
}

func parseSize(s, sep string) (int, int, error) {
	ws, hs, ok := strings.Cut(s, sep)
	if !ok {
		return 0, 0, errors.Errorf("expected w%sh, got %q", sep, s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil {
		return 0, 0, errors.WithStack(err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return 0, 0, errors.WithStack(err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, errors.Errorf("size must be positive, got %q", s)
	}
	return w, h, nil
}

func report(out io.Writer, u *hashlife.Universe, final *pattern.Pattern, ascii string) error {
	fmt.Fprintf(out, "generation  %d\n", u.Generation())
	fmt.Fprintf(out, "population  %d\n", u.Population())
	fmt.Fprintf(out, "level       %d\n", u.Level())
	if b := u.RootBounds(); b.IsEmpty() {
		fmt.Fprintln(out, "bounds      empty")
	} else {
		fmt.Fprintf(out, "bounds      x [%d, %d] y [%d, %d]\n", b.MinX, b.MaxX, b.MinY, b.MaxY)
	}
	fmt.Fprintf(out, "fingerprint %016x\n", final.Fingerprint())

	if ascii == "" {
		return nil
	}
	w, h, err := parseSize(ascii, "x")
	if err != nil {
		return errors.Wrap(err, "--ascii")
	}
	grid := core.NewByteGrid(w, h)
	render.Rasterize(grid, u.DrawBlocks(float64(w/2), float64(h/2), 1, float64(h), float64(w), 0, 0))
	_, err = io.WriteString(out, render.ASCII(grid, 'O', '.'))
	return errors.WithStack(err)
}

func writePattern(stdout io.Writer, path string, p *pattern.Pattern) error {
	if path == "-" {
		return pattern.WriteRLE(stdout, p)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := pattern.WriteRLE(f, p); err != nil {
		_ = f.Close()
		return err
	}
	return errors.WithStack(f.Close())
}

func serveMetrics(addr string, collector *hashlife.Collector, logger *zap.Logger) func() {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collector)
	srv := &http.Server{
		Addr:              addr,
		Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
