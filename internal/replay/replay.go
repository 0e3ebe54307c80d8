package replay

import (
	"context"
	"errors"
	"io"

	"go.uber.org/multierr"
	"golang.org/x/text/language"

	"github.com/banshee-data/formcheck/internal/exercise"
	"github.com/banshee-data/formcheck/internal/i18n"
	"github.com/banshee-data/formcheck/internal/monitoring"
)

// Record is the output for one replayed frame.
type Record struct {
	Frame int `json:"frame"`
	exercise.Result
	Message string `json:"message,omitempty"`
}

// Summary totals a replay run.
type Summary struct {
	Frames    int
	Correct   int
	OutOfView int
	Count     int
	Duration  float64
}

// Options tune a replay run.
type Options struct {
	// Messages adds localized feedback text to every record.
	Messages bool
	Lang     language.Tag

	// Collect, when non-nil, receives every record after it is written.
	Collect func(Record)
}

// Run feeds every frame from src to t in order and writes one record per
// frame to w. It stops between frames when ctx is done and returns the
// totals so far alongside ctx's error.
func Run(ctx context.Context, src *Reader, t Target, w Writer, opts Options) (sum Summary, err error) {
	defer func() {
		err = multierr.Append(err, w.Flush())
	}()

	for {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		f, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sum, err
		}

		res, err := t.Analyze(ctx, f)
		if err != nil {
			return sum, err
		}

		rec := Record{Frame: sum.Frames, Result: res}
		if opts.Messages {
			rec.Message = i18n.Message(opts.Lang, res.Feedback, res.DurationValue())
		}
		if err := w.Write(rec); err != nil {
			return sum, err
		}
		if opts.Collect != nil {
			opts.Collect(rec)
		}

		sum.Frames++
		switch {
		case res.Feedback.OutOfView():
			sum.OutOfView++
		case res.IsCorrect:
			sum.Correct++
		}
		sum.Count = res.CountValue()
		sum.Duration = res.DurationValue()
	}

	monitoring.Logf("replay: %d frames, %d correct, %d out of view, count %d, duration %.1fs",
		sum.Frames, sum.Correct, sum.OutOfView, sum.Count, sum.Duration)
	return sum, nil
}
