// Package enhance rewrites templated drafts with an external text-generation
// model. Every failure degrades to the original draft.
package enhance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"seo-spinner/internal/metrics"

	"go.uber.org/zap"
)

// Role tags a message for the model.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

type Message struct {
	Role    Role
	Content string
}

// Generator is a single prompt/response text-generation call.
type Generator interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

// ErrEmptyResponse is returned when the model answers with no usable text.
var ErrEmptyResponse = errors.New("empty response from model")

// DefaultWordCountTarget applies when neither the request nor the template sets one.
const DefaultWordCountTarget = 150

// Input is everything the prompt needs for one combination.
type Input struct {
	Draft           string
	CustomPrompt    string
	BusinessName    string
	Industry        string
	ServiceName     string
	City            string
	State           string
	Tone            string
	WordCountTarget int
}

// BuildMessages renders the system and user messages for one draft.
func BuildMessages(in Input) []Message {
	target := in.WordCountTarget
	if target <= 0 {
		target = DefaultWordCountTarget
	}
	tone := strings.TrimSpace(in.Tone)
	if tone == "" {
		tone = "professional"
	}

	system := fmt.Sprintf(
		"You are a local SEO content expert. Enhance the following content to be more engaging, "+
			"SEO-optimized, and unique. Maintain the local focus and a %s tone. "+
			"Target word count: %d words. Reply with the rewritten content only.",
		tone, target)

	user := fmt.Sprintf(
		"Original content: %s\n\nCustom requirements: %s\n\nBusiness: %s in %s, %s\nService: %s\nIndustry: %s",
		in.Draft, in.CustomPrompt, in.BusinessName, in.City, in.State, in.ServiceName, in.Industry)

	return []Message{
		{Role: RoleSystem, Content: system},
		{Role: RoleUser, Content: user},
	}
}

// Enhancer applies a Generator with a bounded timeout and silent fallback.
type Enhancer struct {
	gen     Generator
	timeout time.Duration
	logr    *zap.Logger
}

// NewEnhancer returns an Enhancer; a nil gen disables enhancement.
func NewEnhancer(gen Generator, timeout time.Duration, logr *zap.Logger) *Enhancer {
	return &Enhancer{gen: gen, timeout: timeout, logr: logr}
}

// Enabled reports whether a generator is configured.
func (e *Enhancer) Enabled() bool {
	return e != nil && e.gen != nil
}

// Enhance returns the model's rewrite of in.Draft and true, or in.Draft and
// false when enhancement is disabled, not requested, or fails.
func (e *Enhancer) Enhance(ctx context.Context, in Input) (string, bool) {
	if !e.Enabled() || strings.TrimSpace(in.CustomPrompt) == "" {
		return in.Draft, false
	}

	callCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	out, err := e.gen.Generate(callCtx, BuildMessages(in))
	if err == nil && strings.TrimSpace(out) == "" {
		err = ErrEmptyResponse
	}
	if err != nil {
		outcome := "error"
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			outcome = "timeout"
		}
		metrics.EnhancementsTotal.WithLabelValues(outcome).Inc()
		e.logr.Warn("content enhancement failed, using template content",
			zap.String("service", in.ServiceName),
			zap.String("city", in.City),
			zap.String("outcome", outcome),
			zap.Error(err))
		return in.Draft, false
	}

	metrics.EnhancementsTotal.WithLabelValues("success").Inc()
	return strings.TrimSpace(out), true
}
