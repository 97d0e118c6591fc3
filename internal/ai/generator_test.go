package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

type stubCompleter struct {
	reply  string
	err    error
	system string
	user   string
}

func (s *stubCompleter) Complete(_ context.Context, system, user string) (string, error) {
	s.system = system
	s.user = user
	return s.reply, s.err
}

func sampleContext() SessionContext {
	return SessionContext{
		StudentName:      "Ada Park",
		Discipline:       "speech",
		SessionDate:      time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
		AttendanceStatus: "present",
		DurationMinutes:  30,
		Goals:            []string{"Produce /r/ in initial position with 80% accuracy"},
		TherapistNotes:   "7/10 trials correct with visual cue",
	}
}

func TestSuggestParsesJSONFromChattyReply(t *testing.T) {
	t.Parallel()

	stub := &stubCompleter{reply: "Sure! Here is the note:\n```json\n" +
		`{"subjective":"Ada was engaged.","objective":"7/10 trials.","assessment":"Emerging skill.","plan":"Fade cues."}` +
		"\n```\nLet me know if you need changes."}
	g := NewGenerator(stub, zap.NewNop())

	got := g.Suggest(context.Background(), sampleContext())

	if got.Source != SourceAI {
		t.Fatalf("Source = %q, want %q", got.Source, SourceAI)
	}
	if got.Objective != "7/10 trials." || got.Plan != "Fade cues." {
		t.Fatalf("Suggest() = %+v", got)
	}
	if len(got.Warnings) != 0 {
		t.Fatalf("Warnings = %v, want none", got.Warnings)
	}
	if !strings.Contains(stub.user, "Ada Park") || !strings.Contains(stub.user, "speech-language therapy") {
		t.Fatalf("prompt missing session context: %q", stub.user)
	}
	if !strings.Contains(stub.system, "JSON") {
		t.Fatalf("system prompt = %q", stub.system)
	}
}

func TestSuggestFallsBackOnCompletionError(t *testing.T) {
	t.Parallel()

	g := NewGenerator(&stubCompleter{err: errors.New("boom")}, zap.NewNop())

	got := g.Suggest(context.Background(), sampleContext())

	if got.Source != SourceFallback {
		t.Fatalf("Source = %q, want %q", got.Source, SourceFallback)
	}
	if got.Subjective == "" || got.Plan == "" {
		t.Fatalf("fallback missing sections: %+v", got)
	}
	if len(got.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want one", got.Warnings)
	}
}

func TestSuggestFallsBackOnInvalidJSON(t *testing.T) {
	t.Parallel()

	g := NewGenerator(&stubCompleter{reply: "I cannot help with that {not json"}, zap.NewNop())

	got := g.Suggest(context.Background(), sampleContext())

	if got.Source != SourceFallback {
		t.Fatalf("Source = %q, want %q", got.Source, SourceFallback)
	}
	if len(got.Warnings) != 1 || !strings.Contains(got.Warnings[0], "JSON") {
		t.Fatalf("Warnings = %v", got.Warnings)
	}
}

func TestSuggestFillsMissingSections(t *testing.T) {
	t.Parallel()

	g := NewGenerator(&stubCompleter{reply: `{"subjective":"Tired today.","plan":""}`}, zap.NewNop())

	got := g.Suggest(context.Background(), sampleContext())

	if got.Source != SourceAI {
		t.Fatalf("Source = %q, want %q", got.Source, SourceAI)
	}
	if got.Subjective != "Tired today." {
		t.Fatalf("Subjective = %q", got.Subjective)
	}
	fb := Fallback(sampleContext())
	if got.Plan != fb.Plan || got.Objective != fb.Objective || got.Assessment != fb.Assessment {
		t.Fatalf("missing sections not filled from template: %+v", got)
	}
	if len(got.Warnings) != 3 {
		t.Fatalf("Warnings = %v, want 3", got.Warnings)
	}
}

func TestDisabledCompleterFallsBack(t *testing.T) {
	t.Parallel()

	g := NewGenerator(disabledCompleter{}, zap.NewNop())
	if got := g.Suggest(context.Background(), sampleContext()); got.Source != SourceFallback {
		t.Fatalf("Source = %q, want %q", got.Source, SourceFallback)
	}
}

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	if _, ok := ExtractJSON("no braces here"); ok {
		t.Fatal("ExtractJSON found a block in plain text")
	}
	block, ok := ExtractJSON(`prefix {"a": {"b": 1}} suffix`)
	if !ok || block != `{"a": {"b": 1}}` {
		t.Fatalf("ExtractJSON = %q, %v", block, ok)
	}
}

func TestFallbackVariesByAttendance(t *testing.T) {
	t.Parallel()

	ctx := sampleContext()
	ctx.AttendanceStatus = "absent"
	if got := Fallback(ctx).Subjective; !strings.Contains(got, "absent") {
		t.Fatalf("absent fallback subjective = %q", got)
	}
	ctx.AttendanceStatus = "cancelled"
	if got := Fallback(ctx).Subjective; got != "Session was cancelled." {
		t.Fatalf("cancelled fallback subjective = %q", got)
	}
}

func TestBuildPromptWithoutNotes(t *testing.T) {
	t.Parallel()

	p := BuildPrompt(SessionContext{StudentName: "Lee", Discipline: "ot"})
	if !strings.Contains(p, "occupational therapy") || !strings.Contains(p, "(none provided)") {
		t.Fatalf("BuildPrompt() = %q", p)
	}
	if strings.Contains(p, "Date:") {
		t.Fatalf("BuildPrompt() rendered empty date: %q", p)
	}
}
