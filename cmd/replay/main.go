// Command replay runs recorded landmark frames through an exercise tracker,
// either in-process or against a formcheck server, and writes one record
// per frame.
//
//	genframes -exercise pushup -reps 3 | replay -exercise pushup -format csv
//	replay -in session.jsonl -server http://localhost:8080 -exercise plank
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/multierr"

	"github.com/banshee-data/formcheck/internal/config"
	"github.com/banshee-data/formcheck/internal/exercise"
	"github.com/banshee-data/formcheck/internal/httputil"
	"github.com/banshee-data/formcheck/internal/i18n"
	"github.com/banshee-data/formcheck/internal/monitoring"
	"github.com/banshee-data/formcheck/internal/replay"
)

var (
	inPath       = flag.String("in", "-", "JSON-lines frame file, - for stdin")
	outPath      = flag.String("out", "-", "Output file, - for stdout")
	format       = flag.String("format", "json", "Output format: json or csv")
	exerciseName = flag.String("exercise", "squat", "Exercise type")
	serverURL    = flag.String("server", "", "formcheck server base URL; empty replays in-process")
	tuningPath   = flag.String("tuning", "", "Tuning file for in-process replay")
	lang         = flag.String("lang", "", "Add feedback messages in this language (en, zh)")
	plotPath     = flag.String("plot", "", "Write a feature chart to this .png or .svg file")
	logLevel     = flag.String("log-level", "warn", "Log level")
	timeout      = flag.Duration("timeout", 10*time.Second, "Per-request timeout for -server")
)

type options struct {
	exercise string
	server   string
	tuning   string
	lang     string
	plot     string
	timeout  time.Duration
	client   httputil.HTTPClient
}

func newTarget(ctx context.Context, opts options) (replay.Target, error) {
	if opts.server != "" {
		client := opts.client
		if client == nil {
			client = httputil.NewStandardClient(&http.Client{Timeout: opts.timeout})
		}
		return replay.NewRemoteTarget(ctx, client, opts.server, opts.exercise)
	}

	cfg := exercise.DefaultConfig()
	if opts.tuning != "" {
		tuning, err := config.LoadTuningConfig(opts.tuning)
		if err != nil {
			return nil, err
		}
		cfg = exercise.ConfigFromTuning(tuning)
	}
	t, ok := exercise.LookupType(opts.exercise)
	if !ok {
		monitoring.Logf("unknown exercise %q, replaying as %s", opts.exercise, t)
	}
	return replay.NewLocalTarget(exercise.New(t, cfg)), nil
}

// run replays in to out and returns the combined error of the replay and
// of closing the target.
func run(ctx context.Context, in io.Reader, out io.Writer, outFormat string, opts options) (err error) {
	w, err := replay.NewWriter(outFormat, out)
	if err != nil {
		return err
	}
	target, err := newTarget(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, target.Close(context.WithoutCancel(ctx)))
	}()

	var records []replay.Record
	ro := replay.Options{Messages: opts.lang != ""}
	if ro.Messages {
		ro.Lang = i18n.Match(opts.lang)
	}
	if opts.plot != "" {
		ro.Collect = func(r replay.Record) { records = append(records, r) }
	}

	sum, err := replay.Run(ctx, replay.NewReader(in), target, w, ro)
	if err != nil {
		return err
	}
	monitoring.Logf("replayed %d frames: count %d, duration %.1fs", sum.Frames, sum.Count, sum.Duration)

	if opts.plot != "" {
		return replay.PlotFeature(records, opts.exercise, opts.plot)
	}
	return nil
}

func main() {
	flag.Parse()
	monitoring.Setup(monitoring.SetupParams{Level: *logLevel, Output: os.Stderr})

	in := io.Reader(os.Stdin)
	if *inPath != "-" {
		f, err := os.Open(*inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "replay: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	out := io.Writer(os.Stdout)
	if *outPath != "-" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "replay: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := run(ctx, in, out, *format, options{
		exercise: *exerciseName,
		server:   *serverURL,
		tuning:   *tuningPath,
		lang:     *lang,
		plot:     *plotPath,
		timeout:  *timeout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(1)
	}
}
