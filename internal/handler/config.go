package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/backend/config"
	"github.com/projecthub/backend/internal/model"
)

// ConfigHandler 只读暴露运行配置，密钥打码
type ConfigHandler struct {
	cfg *config.Config
}

func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

type ConfigResponse struct {
	LLM           LLMConfigResponse      `json:"llm"`
	Database      DatabaseConfigResponse `json:"database"`
	ExternalData  string                 `json:"external_data_path"`
	Tracing       bool                   `json:"tracing_enabled"`
	MaterialTypes []MaterialTypeResponse `json:"material_types"`
}

type LLMConfigResponse struct {
	Provider  string `json:"provider"`
	APIURL    string `json:"api_url"`
	APIKey    string `json:"api_key"`
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
}

type DatabaseConfigResponse struct {
	Type string `json:"type"`
}

type MaterialTypeResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func (h *ConfigHandler) Get(c *gin.Context) {
	types := make([]MaterialTypeResponse, 0, len(model.MaterialTypes))
	for _, mt := range model.MaterialTypes {
		types = append(types, MaterialTypeResponse{Value: string(mt.Type), Label: mt.Label})
	}
	c.JSON(http.StatusOK, ConfigResponse{
		LLM: LLMConfigResponse{
			Provider:  h.cfg.LLM.Provider,
			APIURL:    h.cfg.LLM.APIURL,
			APIKey:    maskKey(h.cfg.LLM.APIKey),
			Model:     h.cfg.LLM.Model,
			MaxTokens: h.cfg.LLM.MaxTokens,
		},
		Database:      DatabaseConfigResponse{Type: h.cfg.Database.Type},
		ExternalData:  h.cfg.Data.ExternalDataPath,
		Tracing:       h.cfg.Tracing.Enabled,
		MaterialTypes: types,
	})
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "********"
	}
	return key[:4] + "****" + key[len(key)-4:]
}
