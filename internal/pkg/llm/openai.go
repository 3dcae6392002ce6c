package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/projecthub/backend/config"
	"k8s.io/klog/v2"
)

// OpenAIGenerator 基于 eino OpenAI ChatModel 的生成器
type OpenAIGenerator struct {
	chatModel model.BaseChatModel
}

func NewOpenAIGenerator(cfg config.LLMConfig) (*OpenAIGenerator, error) {
	modelConfig := &openai.ChatModelConfig{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
	}
	if cfg.APIURL != "" {
		modelConfig.BaseURL = cfg.APIURL
	}
	if cfg.MaxTokens > 0 {
		maxTokens := cfg.MaxTokens
		modelConfig.MaxTokens = &maxTokens
	}

	chatModel, err := openai.NewChatModel(context.Background(), modelConfig)
	if err != nil {
		klog.Errorf("[OpenAIGenerator] 创建 ChatModel 失败: %v", err)
		return nil, err
	}
	return &OpenAIGenerator{chatModel: chatModel}, nil
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	klog.V(6).Infof("[OpenAIGenerator] Generate 开始: promptLength=%d", len(prompt))
	resp, err := g.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		klog.Errorf("[OpenAIGenerator] Generate 失败: %v", err)
		return "", err
	}
	if resp == nil {
		return "", fmt.Errorf("empty response from model")
	}
	klog.V(6).Infof("[OpenAIGenerator] Generate 完成: responseLength=%d", len(resp.Content))
	return resp.Content, nil
}
