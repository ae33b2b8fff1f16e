package practice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/slacklinehq/slackline/pkg/cpm"
	"github.com/slacklinehq/slackline/pkg/project"
)

func demoProject() *project.Project {
	return project.New("Demo", []project.Task{
		{ID: "a", Name: "A", Duration: 4},
		{ID: "b", Name: "B", Duration: 3, Deps: []string{"a"}},
		{ID: "c", Name: "C", Duration: 3, Deps: []string{"a"}},
		{ID: "d", Name: "D", Duration: 5, Deps: []string{"b", "c"}},
	})
}

func f(v float64) *float64 { return &v }

func TestCheck_AllCorrect(t *testing.T) {
	p := demoProject()
	sched := cpm.Compute(p.Tasks, nil)

	answers := []Answer{
		{TaskID: "a", ES: f(0), EF: f(4), LS: f(0), LF: f(4)},
		{TaskID: "d", ES: f(7), EF: f(12)},
	}

	if got := Check(sched, answers); len(got) != 0 {
		t.Errorf("Check() = %v, want no mismatches", got)
	}
}

func TestCheck_ReportsExpectedValues(t *testing.T) {
	p := demoProject()
	sched := cpm.Compute(p.Tasks, nil)

	answers := []Answer{
		{TaskID: "b", ES: f(5), LF: f(7)}, // ES is wrong, LF is right
	}

	got := Check(sched, answers)
	if len(got) != 1 {
		t.Fatalf("Check() = %v, want exactly one mismatch", got)
	}
	m := got[0]
	if m.TaskID != "b" || m.Field != "ES" {
		t.Errorf("mismatch = %+v, want task b field ES", m)
	}
	if m.Want != 4 || m.Got != 5 {
		t.Errorf("want/got = %v/%v, want 4/5", m.Want, m.Got)
	}
	if !strings.Contains(m.Message, "expected ES = 4") {
		t.Errorf("message %q should state the expected value", m.Message)
	}
}

func TestCheck_BlankFieldsSkipped(t *testing.T) {
	p := demoProject()
	sched := cpm.Compute(p.Tasks, nil)

	// No fields filled in: nothing to check.
	if got := Check(sched, []Answer{{TaskID: "a"}}); len(got) != 0 {
		t.Errorf("Check() = %v, want none for blank answer", got)
	}
}

func TestCheck_UnknownTask(t *testing.T) {
	p := demoProject()
	sched := cpm.Compute(p.Tasks, nil)

	got := Check(sched, []Answer{{TaskID: "ghost", ES: f(0)}})
	if len(got) != 1 || got[0].Field != "task" {
		t.Fatalf("Check() = %v, want one 'task' mismatch", got)
	}
}

func TestParseAnswers(t *testing.T) {
	data := `
[[answer]]
task = "a"
es = 0
ef = 4

[[answer]]
task = "b"
ls = 4
`
	answers, err := ParseAnswers([]byte(data))
	if err != nil {
		t.Fatalf("ParseAnswers: %v", err)
	}
	if len(answers) != 2 {
		t.Fatalf("len = %d, want 2", len(answers))
	}
	if answers[0].TaskID != "a" || *answers[0].EF != 4 {
		t.Errorf("answer[0] = %+v", answers[0])
	}
	if answers[1].ES != nil {
		t.Error("unset fields should stay nil")
	}
	if answers[1].LS == nil || *answers[1].LS != 4 {
		t.Errorf("answer[1].LS = %v, want 4", answers[1].LS)
	}
}

func TestParseAnswers_MissingTaskID(t *testing.T) {
	if _, err := ParseAnswers([]byte("[[answer]]\nes = 1\n")); err == nil {
		t.Error("answer without task id accepted")
	}
}

func TestBuildReport_And_FormatText(t *testing.T) {
	p := demoProject()
	sched := cpm.Compute(p.Tasks, nil)
	answers := []Answer{{TaskID: "b", ES: f(5)}}
	mismatches := Check(sched, answers)

	r := BuildReport(p, sched, answers, mismatches, nil)

	if r.ProjectID != p.ID || r.Duration != 12 {
		t.Errorf("report identity/duration = %s/%v", r.ProjectID, r.Duration)
	}
	if len(r.Critical) == 0 {
		t.Error("report should carry the critical path")
	}

	text := r.FormatText()
	if !strings.Contains(text, "1 value(s) differ") {
		t.Errorf("FormatText() = %q", text)
	}
}

func TestSubmit(t *testing.T) {
	p := demoProject()
	sched := cpm.Compute(p.Tasks, nil)
	r := BuildReport(p, sched, nil, nil, nil)

	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotContentType = req.Header.Get("Content-Type")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	if err := Submit(context.Background(), srv.URL, r); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
}

func TestSubmit_ServerError(t *testing.T) {
	p := demoProject()
	sched := cpm.Compute(p.Tasks, nil)
	r := BuildReport(p, sched, nil, nil, nil)

	submitBackoff = time.Millisecond
	t.Cleanup(func() { submitBackoff = time.Second })

	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		attempts++
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := Submit(context.Background(), srv.URL, r); err == nil {
		t.Error("5xx response should surface as an error")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3 (5xx retried)", attempts)
	}
}

func TestSubmit_ClientErrorNotRetried(t *testing.T) {
	p := demoProject()
	sched := cpm.Compute(p.Tasks, nil)
	r := BuildReport(p, sched, nil, nil, nil)

	submitBackoff = time.Millisecond
	t.Cleanup(func() { submitBackoff = time.Second })

	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		attempts++
		http.Error(w, "bad payload", http.StatusBadRequest)
	}))
	defer srv.Close()

	if err := Submit(context.Background(), srv.URL, r); err == nil {
		t.Error("4xx response should surface as an error")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (4xx not retried)", attempts)
	}
}
