package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/projecthub/backend/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"k8s.io/klog/v2"
)

// TextGenerator 单轮文本生成
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewTextGenerator 按 cfg.LLM.Provider 创建生成器
func NewTextGenerator(cfg *config.Config) (TextGenerator, error) {
	var (
		gen TextGenerator
		err error
	)
	provider := strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	switch provider {
	case "", "openai":
		provider = "openai"
		gen, err = NewOpenAIGenerator(cfg.LLM)
	case "anthropic":
		gen, err = NewAnthropicGenerator(cfg.LLM)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.LLM.Provider)
	}
	if err != nil {
		return nil, err
	}
	klog.V(6).Infof("text generator ready: provider=%s, model=%s", provider, cfg.LLM.Model)
	return &tracedGenerator{provider: provider, model: cfg.LLM.Model, next: gen}, nil
}

// tracedGenerator 为每次生成调用记录一个 span
type tracedGenerator struct {
	provider string
	model    string
	next     TextGenerator
}

func (g *tracedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := otel.Tracer("projecthub/llm").Start(ctx, "llm.generate", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", g.provider),
		attribute.String("llm.model", g.model),
		attribute.Int("llm.prompt_length", len(prompt)),
	)

	out, err := g.next.Generate(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if IsRateLimitError(err) {
			span.SetAttributes(attribute.Bool("llm.rate_limited", true))
			if at := RetryAt(err, time.Now()); !at.IsZero() {
				klog.Warningf("llm rate limited: provider=%s, model=%s, retryAt=%s", g.provider, g.model, at.Format(time.RFC3339))
			} else {
				klog.Warningf("llm rate limited: provider=%s, model=%s, error=%v", g.provider, g.model, err)
			}
		}
		return "", err
	}
	span.SetAttributes(attribute.Int("llm.output_length", len(out)))
	return out, nil
}
