// Command genframes writes synthetic landmark frames as JSON lines for
// cmd/replay and for exercising a running formcheck server.
//
//	genframes -exercise squat -reps 5 > squat.jsonl
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/banshee-data/formcheck/internal/exercise"
	"github.com/banshee-data/formcheck/internal/pose"
	"github.com/banshee-data/formcheck/internal/pose/synth"
)

var (
	exerciseName = flag.String("exercise", "squat", "Exercise to script: squat, pushup, plank, jumping_jack")
	reps         = flag.Int("reps", 3, "Repetitions to script, or seconds to hold for plank")
	phaseFrames  = flag.Int("phase-frames", 12, "Frames spent in each phase of a rep")
	gapEvery     = flag.Int("gap-every", 0, "Replace every Nth frame with a fully occluded one (0 disables)")
	bare         = flag.Bool("bare", false, "Write bare landmark arrays instead of {\"landmarks\": [...]} objects")
	outPath      = flag.String("out", "-", "Output file, - for stdout")
)

// script returns frames that perform n repetitions of t (n seconds of hold
// for plank) at the default tracker tuning.
func script(t exercise.Type, n, perPhase int) []pose.Frame {
	var runs [][]pose.Frame
	switch t {
	case exercise.Pushup:
		runs = append(runs, synth.Repeat(synth.Pushup(160), perPhase))
		for range n {
			runs = append(runs, synth.Repeat(synth.Pushup(70), perPhase), synth.Repeat(synth.Pushup(160), perPhase))
		}
	case exercise.Plank:
		runs = append(runs, synth.Repeat(synth.Plank(true), n*30))
	case exercise.JumpingJack:
		// The reported count is half the completed cycles.
		runs = append(runs, synth.Repeat(synth.JumpingJack(false, false), perPhase))
		for range 2 * n {
			runs = append(runs, synth.Repeat(synth.JumpingJack(true, true), perPhase),
				synth.Repeat(synth.JumpingJack(false, false), perPhase))
		}
	default:
		runs = append(runs, synth.Repeat(synth.Squat(170), perPhase))
		for range n {
			runs = append(runs, synth.Repeat(synth.Squat(80), perPhase), synth.Repeat(synth.Squat(170), perPhase))
		}
	}
	return synth.Sequence(runs...)
}

// withGaps occludes every nth frame.
func withGaps(frames []pose.Frame, n int) []pose.Frame {
	if n <= 0 {
		return frames
	}
	out := make([]pose.Frame, len(frames))
	for i, f := range frames {
		if (i+1)%n == 0 {
			f = synth.Occluded(f)
		}
		out[i] = f
	}
	return out
}

func writeFrames(w io.Writer, frames []pose.Frame, bare bool) error {
	enc := json.NewEncoder(w)
	for _, f := range frames {
		var v any = f
		if !bare {
			v = struct {
				Landmarks pose.Frame `json:"landmarks"`
			}{f}
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	flag.Parse()

	t, ok := exercise.LookupType(*exerciseName)
	if !ok {
		fmt.Fprintf(os.Stderr, "genframes: unknown exercise %q\n", *exerciseName)
		os.Exit(2)
	}
	if *reps < 0 || *phaseFrames < 1 {
		fmt.Fprintln(os.Stderr, "genframes: -reps must be >= 0 and -phase-frames >= 1")
		os.Exit(2)
	}

	out := os.Stdout
	if *outPath != "-" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "genframes: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	bw := bufio.NewWriter(out)
	frames := withGaps(script(t, *reps, *phaseFrames), *gapEvery)
	if err := writeFrames(bw, frames, *bare); err != nil {
		fmt.Fprintf(os.Stderr, "genframes: %v\n", err)
		os.Exit(1)
	}
	if err := bw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "genframes: %v\n", err)
		os.Exit(1)
	}
}
