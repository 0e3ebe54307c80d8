package replay

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/text/language"

	"github.com/banshee-data/formcheck/internal/api"
	"github.com/banshee-data/formcheck/internal/exercise"
	"github.com/banshee-data/formcheck/internal/httputil"
	"github.com/banshee-data/formcheck/internal/monitoring"
	"github.com/banshee-data/formcheck/internal/pose"
	"github.com/banshee-data/formcheck/internal/pose/synth"
	"github.com/banshee-data/formcheck/internal/session"
)

func TestMain(m *testing.M) {
	monitoring.SetLogger(nil)
	monitoring.SetDebugLogger(nil)
	goleak.VerifyTestMain(m)
}

// jsonl renders frames as JSON lines, alternating the object and bare
// array forms.
func jsonl(t *testing.T, frames []pose.Frame) string {
	t.Helper()
	var buf bytes.Buffer
	for i, f := range frames {
		var v any = f
		if i%2 == 0 {
			v = map[string]any{"landmarks": f}
		}
		b, err := json.Marshal(v)
		require.NoError(t, err)
		buf.Write(b)
		buf.WriteByte('\n')
	}
	return buf.String()
}

func squatRep() []pose.Frame {
	return synth.Sequence(
		synth.Repeat(synth.Squat(170), 10),
		synth.Repeat(synth.Squat(80), 10),
		synth.Repeat(synth.Squat(170), 10),
	)
}

func TestReader(t *testing.T) {
	t.Parallel()

	in := "\n" + `{"landmarks":[{"x":0.1,"y":0.2,"visibility":0.9}]}` + "\n\n" +
		`[{"x":0.3,"y":0.4}]` + "\n" +
		`{"landmarks":[]}` + "\n"
	r := NewReader(strings.NewReader(in))

	f, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, pose.Frame{{X: 0.1, Y: 0.2, Visibility: 0.9}}, f)
	assert.Equal(t, 2, r.Line())

	f, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, pose.Frame{{X: 0.3, Y: 0.4}}, f)
	assert.Equal(t, 4, r.Line())

	f, err = r.Next()
	require.NoError(t, err)
	assert.NotNil(t, f)
	assert.Empty(t, f)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReader_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		wantErr error
		msg     string
	}{
		{name: "no landmarks key", in: `{"frame":1}`, wantErr: ErrEmptyFrame, msg: "line 1"},
		{name: "null landmarks", in: "\n" + `{"landmarks":null}`, wantErr: ErrEmptyFrame, msg: "line 2"},
		{name: "malformed", in: `{"landmarks":[`, msg: "line 1"},
		{name: "wrong shape", in: `[1,2,3]`, msg: "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewReader(strings.NewReader(tt.in)).Next()
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestRun_Local(t *testing.T) {
	t.Parallel()

	frames := synth.Sequence(squatRep(), synth.Repeat(synth.Occluded(synth.Standing()), 2))
	var out bytes.Buffer
	var collected []Record

	sum, err := Run(context.Background(),
		NewReader(strings.NewReader(jsonl(t, frames))),
		NewLocalTarget(exercise.CreateTracker("squat")),
		NewJSONWriter(&out),
		Options{Messages: true, Lang: language.English, Collect: func(r Record) { collected = append(collected, r) }},
	)
	require.NoError(t, err)
	assert.Equal(t, len(frames), sum.Frames)
	assert.Equal(t, 2, sum.OutOfView)
	assert.Equal(t, 1, sum.Count)
	assert.Zero(t, sum.Duration)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, len(frames))

	var lastRec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &lastRec))
	assert.Equal(t, float64(len(frames)-1), lastRec["frame"])
	assert.Equal(t, string(exercise.FeedbackLowerBodyNotVisible), lastRec["feedback"])
	assert.Equal(t, float64(1), lastRec["count"])
	assert.Equal(t, "Make sure your lower body is in view of the camera", lastRec["message"])

	require.Len(t, collected, len(frames))
	for i, rec := range collected {
		assert.Equal(t, i, rec.Frame)
	}
}

func TestRun_CSV(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	frames := synth.Repeat(synth.Plank(true), 12)
	_, err := Run(context.Background(),
		NewReader(strings.NewReader(jsonl(t, frames))),
		NewLocalTarget(exercise.CreateTracker("plank")),
		NewCSVWriter(&out),
		Options{},
	)
	require.NoError(t, err)

	rows, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(frames)+1)
	assert.Equal(t, CSVHeader, rows[0])
	assert.Equal(t, []string{"0", "false", "80", string(exercise.FeedbackPlankHoldSteady), "", "0.000"}, rows[1])
	assert.Equal(t, []string{"11", "true", "80", string(exercise.FeedbackPlankHolding), "", "0.400"}, rows[12])
}

func TestNewWriter(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"json", "JSONL", "csv"} {
		w, err := NewWriter(format, io.Discard)
		require.NoError(t, err, format)
		assert.NotNil(t, w)
	}
	_, err := NewWriter("xml", io.Discard)
	assert.Error(t, err)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	seen := 0
	sum, err := Run(ctx,
		NewReader(strings.NewReader(jsonl(t, squatRep()))),
		NewLocalTarget(exercise.CreateTracker("squat")),
		NewJSONWriter(io.Discard),
		Options{Collect: func(Record) {
			seen++
			if seen == 5 {
				cancel()
			}
		}},
	)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 5, sum.Frames)
}

func TestRun_ReaderError(t *testing.T) {
	t.Parallel()

	in := jsonl(t, synth.Repeat(synth.Standing(), 2)) + `{"frame":3}` + "\n"
	sum, err := Run(context.Background(),
		NewReader(strings.NewReader(in)),
		NewLocalTarget(exercise.CreateTracker("squat")),
		NewJSONWriter(io.Discard),
		Options{},
	)
	assert.ErrorIs(t, err, ErrEmptyFrame)
	assert.Equal(t, 2, sum.Frames)
}

type failingWriter struct{ flushErr error }

func (failingWriter) Write(Record) error { return errors.New("write failed") }
func (w failingWriter) Flush() error     { return w.flushErr }

func TestRun_WriterErrorsCombine(t *testing.T) {
	t.Parallel()

	errFlush := errors.New("flush failed")
	_, err := Run(context.Background(),
		NewReader(strings.NewReader(jsonl(t, synth.Repeat(synth.Standing(), 1)))),
		NewLocalTarget(exercise.CreateTracker("squat")),
		failingWriter{flushErr: errFlush},
		Options{},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, errFlush)
	assert.Contains(t, err.Error(), "write failed")
}

func TestRemoteTarget_MatchesLocal(t *testing.T) {
	sessions := session.NewRegistry(exercise.DefaultConfig(), nil, nil)
	srv := httptest.NewServer(api.NewServer(sessions, nil, nil).ServeMux())
	defer srv.Close()

	ctx := context.Background()
	input := jsonl(t, synth.Sequence(squatRep(), synth.Repeat(synth.Occluded(synth.Standing()), 1)))

	remote, err := NewRemoteTarget(ctx, httputil.NewStandardClient(srv.Client()), srv.URL+"/", "squat")
	require.NoError(t, err)
	require.NotEmpty(t, remote.SessionID())

	var remoteRecs, localRecs []Record
	_, err = Run(ctx, NewReader(strings.NewReader(input)), remote, NewJSONWriter(io.Discard),
		Options{Collect: func(r Record) { remoteRecs = append(remoteRecs, r) }})
	require.NoError(t, err)
	_, err = Run(ctx, NewReader(strings.NewReader(input)), NewLocalTarget(exercise.CreateTracker("squat")),
		NewJSONWriter(io.Discard), Options{Collect: func(r Record) { localRecs = append(localRecs, r) }})
	require.NoError(t, err)

	if diff := cmp.Diff(localRecs, remoteRecs); diff != "" {
		t.Errorf("remote replay differs from local (-local +remote):\n%s", diff)
	}

	require.NoError(t, remote.Close(ctx))
	snap, err := sessions.Get(remote.SessionID())
	require.NoError(t, err)
	assert.True(t, snap.Ended)
	assert.Equal(t, 1, snap.Stats.Reps)
}

func TestRemoteTarget_Errors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mock := httputil.NewMockHTTPClient().AddResponse(http.StatusBadRequest, `{"error":"exercise_type is required"}`)
	_, err := NewRemoteTarget(ctx, mock, "http://formcheck.test", "")
	var se *httputil.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)

	mock = httputil.NewMockHTTPClient().AddResponse(http.StatusCreated, `{}`)
	_, err = NewRemoteTarget(ctx, mock, "http://formcheck.test", "squat")
	assert.ErrorContains(t, err, "no session id")

	mock = httputil.NewMockHTTPClient().
		AddResponse(http.StatusCreated, `{"id":"abc","exercise_type":"squat"}`).
		AddResponse(http.StatusConflict, `{"error":"session ended"}`)
	remote, err := NewRemoteTarget(ctx, mock, "http://formcheck.test", "squat")
	require.NoError(t, err)
	_, err = remote.Analyze(ctx, nil)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusConflict, se.StatusCode)

	req, body := mock.GetRequest(1)
	assert.Equal(t, "/sessions/abc/frames", req.URL.Path)
	assert.JSONEq(t, `{"landmarks":[]}`, string(body))
}

func TestPlotFeature(t *testing.T) {
	t.Parallel()

	var recs []Record
	_, err := Run(context.Background(),
		NewReader(strings.NewReader(jsonl(t, squatRep()))),
		NewLocalTarget(exercise.CreateTracker("squat")),
		NewJSONWriter(io.Discard),
		Options{Collect: func(r Record) { recs = append(recs, r) }},
	)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "squat.png")
	require.NoError(t, PlotFeature(recs, "squat knee angle", path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	err = PlotFeature([]Record{{Frame: 0}}, "empty", filepath.Join(t.TempDir(), "empty.png"))
	assert.ErrorContains(t, err, "no in-view frames")
}
