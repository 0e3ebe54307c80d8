package replay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/banshee-data/formcheck/internal/api"
	"github.com/banshee-data/formcheck/internal/exercise"
	"github.com/banshee-data/formcheck/internal/httputil"
	"github.com/banshee-data/formcheck/internal/monitoring"
	"github.com/banshee-data/formcheck/internal/pose"
	"github.com/banshee-data/formcheck/internal/session"
)

// Target analyses frames on behalf of a replay.
type Target interface {
	Analyze(ctx context.Context, f pose.Frame) (exercise.Result, error)
	Close(ctx context.Context) error
}

// LocalTarget runs frames through an in-process tracker.
type LocalTarget struct {
	tracker exercise.Tracker
}

func NewLocalTarget(tr exercise.Tracker) *LocalTarget {
	return &LocalTarget{tracker: tr}
}

func (t *LocalTarget) Analyze(_ context.Context, f pose.Frame) (exercise.Result, error) {
	return t.tracker.Analyze(f), nil
}

func (t *LocalTarget) Close(context.Context) error { return nil }

// RemoteTarget streams frames to a session on a formcheck server.
type RemoteTarget struct {
	client httputil.HTTPClient
	base   string
	id     string
}

// NewRemoteTarget starts a session for exerciseType on the server at
// baseURL.
func NewRemoteTarget(ctx context.Context, client httputil.HTTPClient, baseURL, exerciseType string) (*RemoteTarget, error) {
	base := strings.TrimRight(baseURL, "/")
	var snap session.Snapshot
	err := httputil.DoJSON(ctx, client, http.MethodPost, base+"/sessions",
		api.StartRequest{ExerciseType: exerciseType}, &snap)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	if snap.ID == "" {
		return nil, fmt.Errorf("start session: server returned no session id")
	}
	monitoring.Logf("replay: remote session %s (%s)", snap.ID, snap.Exercise)
	return &RemoteTarget{client: client, base: base, id: snap.ID}, nil
}

// SessionID returns the server-side session ID.
func (t *RemoteTarget) SessionID() string {
	return t.id
}

func (t *RemoteTarget) sessionURL(action string) string {
	return t.base + "/sessions/" + url.PathEscape(t.id) + "/" + action
}

func (t *RemoteTarget) Analyze(ctx context.Context, f pose.Frame) (exercise.Result, error) {
	if f == nil {
		f = pose.Frame{}
	}
	var resp api.FrameResponse
	if err := httputil.DoJSON(ctx, t.client, http.MethodPost, t.sessionURL("frames"),
		api.FrameRequest{Landmarks: f}, &resp); err != nil {
		return exercise.Result{}, fmt.Errorf("analyze frame: %w", err)
	}
	return resp.Result, nil
}

// Close ends the remote session and logs its summary.
func (t *RemoteTarget) Close(ctx context.Context) error {
	var sum session.Summary
	if err := httputil.DoJSON(ctx, t.client, http.MethodPost, t.sessionURL("end"), nil, &sum); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	monitoring.Logf("replay: session %s ended, %d frames, accuracy %.2f, reps %d, hold %.1fs",
		t.id, sum.Stats.TotalFrames, sum.Stats.Accuracy, sum.Stats.Reps, sum.Stats.HoldSeconds)
	return nil
}
