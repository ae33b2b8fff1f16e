package practice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/slacklinehq/slackline/pkg/cpm"
	"github.com/slacklinehq/slackline/pkg/errors"
	"github.com/slacklinehq/slackline/pkg/httputil"
	"github.com/slacklinehq/slackline/pkg/project"
)

// Report is the read-only payload handed to an external evaluation service.
// It is a snapshot: the scheduling core never sees it, and nothing in it can
// feed back into a computation.
type Report struct {
	ProjectID   string             `json:"project_id"`
	ProjectName string             `json:"project_name"`
	Duration    float64            `json:"duration"`
	Critical    []string           `json:"critical"`
	Schedule    *cpm.Schedule      `json:"schedule"`
	Mismatches  []Mismatch         `json:"mismatches,omitempty"`
	Answers     []Answer           `json:"answers,omitempty"`
	Overrides   map[string]float64 `json:"overrides,omitempty"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// BuildReport assembles the evaluation payload for a practice run.
func BuildReport(p *project.Project, sched *cpm.Schedule, answers []Answer, mismatches []Mismatch, overrides map[string]float64) *Report {
	return &Report{
		ProjectID:   p.ID,
		ProjectName: p.Name,
		Duration:    sched.Duration,
		Critical:    sched.CriticalPath(),
		Schedule:    sched,
		Mismatches:  mismatches,
		Answers:     answers,
		Overrides:   overrides,
		GeneratedAt: time.Now().UTC(),
	}
}

// FormatText renders the report as a short human-readable summary.
func (r *Report) FormatText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Project %s: duration %g, critical path %s\n",
		r.ProjectName, r.Duration, strings.Join(r.Critical, " → "))
	if len(r.Mismatches) == 0 {
		b.WriteString("All entered values match the computed schedule.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "%d value(s) differ from the computed schedule:\n", len(r.Mismatches))
	for _, m := range r.Mismatches {
		fmt.Fprintf(&b, "  - %s\n", m.Message)
	}
	return b.String()
}

// submitTimeout bounds the fire-and-forget evaluation request. The core
// requires no cancellation semantics; the timeout only keeps a dead endpoint
// from hanging the caller.
const submitTimeout = 10 * time.Second

// submitBackoff is the initial retry delay for transient submit failures.
// Variable so tests can shrink it.
var submitBackoff = time.Second

// Submit POSTs the report to an evaluation endpoint as JSON.
// The call is fire-and-forget from the scheduler's point of view: the
// response body is discarded and only transport-level failures are reported.
// Transient failures (network errors, 5xx) are retried with backoff; client
// errors are not.
func Submit(ctx context.Context, url string, r *Report) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode report")
	}

	ctx, cancel := context.WithTimeout(ctx, submitTimeout)
	defer cancel()

	return httputil.Retry(ctx, 3, submitBackoff, func() error {
		return postReport(ctx, url, payload)
	})
}

func postReport(ctx context.Context, url string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "build report request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "submit report to %s", url)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return &httputil.RetryableError{Err: errors.New(errors.ErrCodeNetwork, "evaluation endpoint returned %s", resp.Status)}
	}
	if resp.StatusCode >= 400 {
		return errors.New(errors.ErrCodeNetwork, "evaluation endpoint returned %s", resp.Status)
	}
	return nil
}
