package llm

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
	"github.com/projecthub/backend/config"
	"k8s.io/klog/v2"
)

const defaultAnthropicMaxTokens = 4096

// AnthropicGenerator 基于 Anthropic Messages API 的生成器
type AnthropicGenerator struct {
	client    *anthropic.Client
	model     string
	maxTokens int
}

func NewAnthropicGenerator(cfg config.LLMConfig) (*AnthropicGenerator, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("anthropic model is required")
	}
	var opts []anthropic.ClientOption
	// 默认配置里的 OpenAI 地址不适用于 Anthropic
	if cfg.APIURL != "" && cfg.APIURL != config.Default().LLM.APIURL {
		opts = append(opts, anthropic.WithBaseURL(cfg.APIURL))
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}
	return &AnthropicGenerator{
		client:    anthropic.NewClient(cfg.APIKey, opts...),
		model:     cfg.Model,
		maxTokens: maxTokens,
	}, nil
}

func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	klog.V(6).Infof("[AnthropicGenerator] Generate 开始: model=%s, promptLength=%d", g.model, len(prompt))
	resp, err := g.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(g.model),
		MaxTokens: g.maxTokens,
		Messages: []anthropic.Message{
			{Role: anthropic.RoleUser, Content: []anthropic.MessageContent{
				{Type: "text", Text: &prompt},
			}},
		},
	})
	if err != nil {
		klog.Errorf("[AnthropicGenerator] Generate 失败: %v", err)
		return "", err
	}
	for _, block := range resp.Content {
		if block.Type == "text" && block.Text != nil {
			return *block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in anthropic response")
}
