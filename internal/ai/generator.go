package ai

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

// Suggestion is a proposed SOAP note. Warnings explain any section that fell
// back to a template.
type Suggestion struct {
	Subjective string   `json:"subjective"`
	Objective  string   `json:"objective"`
	Assessment string   `json:"assessment"`
	Plan       string   `json:"plan"`
	Source     string   `json:"source"`
	Warnings   []string `json:"warnings"`
}

var jsonBlock = regexp.MustCompile(`(?s)\{.*\}`)

// Generator turns session context into a suggested note. It never fails: any
// completion or parse problem yields template text plus warnings.
type Generator struct {
	completer Completer
	log       *zap.Logger
}

func NewGenerator(completer Completer, log *zap.Logger) *Generator {
	return &Generator{completer: completer, log: log}
}

func (g *Generator) Suggest(ctx context.Context, s SessionContext) Suggestion {
	reply, err := g.completer.Complete(ctx, systemPrompt, BuildPrompt(s))
	if err != nil {
		g.log.Warn("note suggestion failed, using fallback", zap.Error(err))
		fb := Fallback(s)
		fb.Warnings = append(fb.Warnings, "AI suggestion unavailable; showing a template instead")
		return fb
	}

	suggestion, warnings := parseReply(reply, s)
	suggestion.Warnings = warnings
	if suggestion.Warnings == nil {
		suggestion.Warnings = []string{}
	}
	if len(warnings) > 0 {
		g.log.Info("note suggestion parsed with warnings", zap.Strings("warnings", warnings))
	}
	return suggestion
}

// ExtractJSON returns the outermost {...} block of a free-text reply.
func ExtractJSON(reply string) (string, bool) {
	block := jsonBlock.FindString(reply)
	if block == "" || !gjson.Valid(block) {
		return "", false
	}
	return block, true
}

func parseReply(reply string, s SessionContext) (Suggestion, []string) {
	fb := Fallback(s)

	block, ok := ExtractJSON(reply)
	if !ok {
		fb.Warnings = nil
		return fb, []string{"AI response was not valid JSON; showing a template instead"}
	}

	fields := gjson.GetMany(block, "subjective", "objective", "assessment", "plan")
	fallbacks := []string{fb.Subjective, fb.Objective, fb.Assessment, fb.Plan}
	names := []string{"subjective", "objective", "assessment", "plan"}

	values := make([]string, len(fields))
	var warnings []string
	usedAI := false
	for i, f := range fields {
		text := strings.TrimSpace(f.String())
		if !f.Exists() || text == "" {
			values[i] = fallbacks[i]
			warnings = append(warnings, fmt.Sprintf("AI response had no %s section; template used", names[i]))
			continue
		}
		values[i] = text
		usedAI = true
	}

	source := SourceAI
	if !usedAI {
		source = SourceFallback
	}
	return Suggestion{
		Subjective: values[0],
		Objective:  values[1],
		Assessment: values[2],
		Plan:       values[3],
		Source:     source,
	}, warnings
}
