// SPDX-License-Identifier: MIT

// Command covwt computes the weighted covariance (and optionally the
// correlation) of a numeric table and prints it as JSON.
//
//	covwt [flags] [DATA]
//
// DATA is a CSV file with one observation per line; "-" or no argument reads
// stdin. --request FILE reads a YAML request instead.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/katalvlaran/wcov/internal/config"
	"github.com/katalvlaran/wcov/internal/hostio"
	"github.com/katalvlaran/wcov/matrix"
	"github.com/katalvlaran/wcov/wcov"
	"gopkg.in/alecthomas/kingpin.v2"
)

const version = "v0.1.0"

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// flags holds the parsed command line.
type flags struct {
	data        string
	weights     string
	weightsFile string
	center      string
	method      string
	backend     string
	cor         bool
	header      bool
	request     string
	indent      bool
	eigen       bool
	logLevel    string
	logFormat   string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run is main without the process exit, so it can be tested in-process.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "covwt: %v\n", err)

		return exitUsage
	}

	f, err := parseFlags(args, cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "covwt: %v\n", err)

		return exitUsage
	}

	logger := newLogger(stderr, f.logLevel, f.logFormat)

	X, opts, err := loadInput(f, stdin)
	if err != nil {
		logger.Error("failed to load input", slog.String("error", err.Error()))

		return exitError
	}
	resolved := wcov.NewOptions(opts...)
	logger.Debug("input loaded",
		slog.Int("n_obs", X.Rows()),
		slog.Int("n_vars", X.Cols()),
		slog.String("method", resolved.Method().String()),
		slog.String("backend", resolved.Backend().String()),
		slog.Bool("weighted", resolved.Weights() != nil),
		slog.Bool("centered", resolved.Center() != nil),
	)

	res, err := wcov.Compute(X, opts...)
	if err != nil {
		logger.Error("estimation failed", slog.String("error", err.Error()))

		return exitError
	}

	if nf := hostio.NonFinite(res.Cov); nf > 0 {
		logger.Warn("covariance has non-finite entries", slog.Int("count", nf))
	}
	logger.Info("estimate done", slog.Int("n_obs", res.NObs), slog.Int("n_vars", len(res.Center)))

	rec := hostio.NewRecord(res)
	if f.eigen {
		vals, _, err := matrix.EigenSym(res.Cov)
		if err != nil {
			logger.Warn("eigenvalues skipped", slog.String("error", err.Error()))
		} else {
			rec.SetEigen(vals)
		}
	}

	if err = hostio.WriteJSON(stdout, rec, f.indent); err != nil {
		logger.Error("failed to write result", slog.String("error", err.Error()))

		return exitError
	}

	return exitOK
}

// parseFlags declares the command line over cfg's defaults and parses args.
func parseFlags(args []string, cfg *config.Config, stderr io.Writer) (*flags, error) {
	app := kingpin.New("covwt", "Weighted covariance and correlation of a numeric table")
	app.Version(version)
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)

	f := &flags{}
	app.Arg("data", "CSV data file, one observation per line ('-' for stdin)").Default("-").StringVar(&f.data)
	app.Flag("weights", "comma-separated observation weights").Default("").StringVar(&f.weights)
	app.Flag("weights-file", "file with one weight per line").Default("").StringVar(&f.weightsFile)
	app.Flag("center", "comma-separated center, one value per column").Default("").StringVar(&f.center)
	app.Flag("method", "normalisation: unbiased or ML").Default(cfg.Method).
		EnumVar(&f.method, wcov.MethodNameUnbiased, wcov.MethodNameML)
	app.Flag("backend", "crossproduct engine: native or gonum").Default(cfg.Backend).
		EnumVar(&f.backend, wcov.BackendNameNative, wcov.BackendNameGonum)
	app.Flag("cor", "also compute the correlation matrix").Default("false").BoolVar(&f.cor)
	app.Flag("header", "first CSV line holds column names").Default("false").BoolVar(&f.header)
	app.Flag("request", "YAML request file; replaces DATA and the data flags").Default("").StringVar(&f.request)
	app.Flag("indent", "indent the JSON output").Default("false").BoolVar(&f.indent)
	app.Flag("eigen", "also report the eigenvalues of the covariance matrix").Default("false").BoolVar(&f.eigen)
	app.Flag("log-level", "debug, info, warn or error").Default(cfg.LogLevel).
		EnumVar(&f.logLevel, "debug", "info", "warn", "warning", "error")
	app.Flag("log-format", "text or json").Default(cfg.LogFormat).EnumVar(&f.logFormat, "text", "json")

	if _, err := app.Parse(args); err != nil {
		return nil, err
	}
	if f.weights != "" && f.weightsFile != "" {
		return nil, errors.New("--weights and --weights-file are mutually exclusive")
	}

	return f, nil
}

// loadInput builds the data matrix and estimator options from either a YAML
// request or DATA plus flags.
func loadInput(f *flags, stdin io.Reader) (*matrix.Dense, []wcov.Option, error) {
	method, err := wcov.ParseMethod(f.method)
	if err != nil {
		return nil, nil, err
	}
	backend, err := wcov.ParseBackend(f.backend)
	if err != nil {
		return nil, nil, err
	}

	if f.request != "" {
		return loadRequest(f, method, backend)
	}

	in := stdin
	if f.data != "-" {
		fh, err := os.Open(f.data)
		if err != nil {
			return nil, nil, err
		}
		defer fh.Close()
		in = fh
	}
	X, _, err := hostio.ReadCSV(in, f.header)
	if err != nil {
		return nil, nil, err
	}

	weights, err := loadWeights(f)
	if err != nil {
		return nil, nil, err
	}
	center, err := hostio.ParseVector(f.center)
	if err != nil {
		return nil, nil, fmt.Errorf("--center: %w", err)
	}

	return X, []wcov.Option{
		wcov.WithWeights(weights),
		wcov.WithCenter(center),
		wcov.WithCorrelation(f.cor),
		wcov.WithMethod(method),
		wcov.WithBackend(backend),
	}, nil
}

func loadRequest(f *flags, method wcov.Method, backend wcov.Backend) (*matrix.Dense, []wcov.Option, error) {
	fh, err := os.Open(f.request)
	if err != nil {
		return nil, nil, err
	}
	defer fh.Close()

	req, err := hostio.DecodeRequest(fh)
	if err != nil {
		return nil, nil, err
	}
	req.Correlation = req.Correlation || f.cor
	X, err := req.Matrix()
	if err != nil {
		return nil, nil, err
	}
	opts, err := req.Options(method, backend)
	if err != nil {
		return nil, nil, err
	}

	return X, opts, nil
}

func loadWeights(f *flags) ([]float64, error) {
	if f.weightsFile == "" {
		w, err := hostio.ParseVector(f.weights)
		if err != nil {
			return nil, fmt.Errorf("--weights: %w", err)
		}

		return w, nil
	}

	fh, err := os.Open(f.weightsFile)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	return hostio.ReadVector(fh)
}

// newLogger builds a slog logger writing to w.
func newLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(level)}
	var h slog.Handler
	if strings.ToLower(format) == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	return slog.New(h).With(slog.String("component", "covwt"))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
