package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	LLM      LLMConfig      `yaml:"llm"`
	Data     DataConfig     `yaml:"data"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release
}

type DatabaseConfig struct {
	Type string `yaml:"type"` // sqlite, mysql, postgres
	DSN  string `yaml:"dsn"`
}

type LLMConfig struct {
	Provider  string `yaml:"provider"` // openai, anthropic
	APIURL    string `yaml:"api_url"`
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

type DataConfig struct {
	Dir string `yaml:"dir"`
	// ExternalDataPath 外部数据文件（JSON 数组）
	ExternalDataPath string `yaml:"external_data_path"`
}

type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Endpoint    string  `yaml:"endpoint"` // 为空时使用 stdout exporter
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// DefaultAnthropicModel provider 为 anthropic 且未指定模型时使用
const DefaultAnthropicModel = "claude-3-5-sonnet-latest"

var (
	cfg  *Config
	once sync.Once
)

func GetConfig() *Config {
	once.Do(func() {
		cfg = loadConfig()
	})
	return cfg
}

// Default 返回仅包含默认值的配置
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Type: "sqlite",
			DSN:  "./data/app.db",
		},
		LLM: LLMConfig{
			Provider:  "openai",
			APIURL:    "https://api.openai.com/v1",
			Model:     "gpt-4o",
			MaxTokens: 4096,
		},
		Data: DataConfig{
			Dir:              "./data",
			ExternalDataPath: "./data/dummy_data.json",
		},
		Tracing: TracingConfig{
			ServiceName: "projecthub",
			SampleRatio: 0.1,
		},
	}
}

func loadConfig() *Config {
	config := Default()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := yaml.Unmarshal(data, config); err != nil {
			klog.Warningf("解析配置文件失败 %s: %v", configPath, err)
		}
	}

	// .env 只补充尚未设置的环境变量
	if err := godotenv.Load(); err != nil {
		klog.V(6).Infof("未加载 .env 文件: %v", err)
	}

	applyEnv(config)
	return config
}

// applyEnv 环境变量优先级高于配置文件
func applyEnv(config *Config) {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		config.Server.Port = port
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		config.Server.Mode = mode
	}

	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		config.LLM.Provider = provider
	}
	switch strings.ToLower(config.LLM.Provider) {
	case "anthropic":
		if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
			config.LLM.APIKey = apiKey
		}
		if baseURL := os.Getenv("ANTHROPIC_BASE_URL"); baseURL != "" {
			config.LLM.APIURL = baseURL
		}
		// 默认模型属于 OpenAI，切换到 anthropic 时需要替换
		if config.LLM.Model == "" || config.LLM.Model == Default().LLM.Model {
			config.LLM.Model = DefaultAnthropicModel
		}
		if model := os.Getenv("ANTHROPIC_MODEL_NAME"); model != "" {
			config.LLM.Model = model
		}
	default:
		if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
			config.LLM.APIKey = apiKey
		}
		if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
			config.LLM.APIURL = baseURL
		}
		if model := os.Getenv("OPENAI_MODEL_NAME"); model != "" {
			config.LLM.Model = model
		}
	}

	// 数据库环境变量
	if dbType := os.Getenv("DB_TYPE"); dbType != "" {
		config.Database.Type = dbType
	}
	if dbDSN := os.Getenv("DB_DSN"); dbDSN != "" {
		config.Database.DSN = dbDSN
	}

	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		config.Data.Dir = dataDir
	}
	if path := os.Getenv("EXTERNAL_DATA_PATH"); path != "" {
		config.Data.ExternalDataPath = path
	}
	if config.Data.ExternalDataPath == "" {
		config.Data.ExternalDataPath = filepath.Join(config.Data.Dir, "dummy_data.json")
	}

	if enabled := strings.ToLower(strings.TrimSpace(os.Getenv("OTEL_ENABLED"))); enabled != "" {
		config.Tracing.Enabled = enabled == "1" || enabled == "true" || enabled == "yes" || enabled == "on"
	}
	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); endpoint != "" {
		config.Tracing.Endpoint = endpoint
	}
	if ratio := os.Getenv("OTEL_SAMPLER_RATIO"); ratio != "" {
		if f, err := strconv.ParseFloat(ratio, 64); err == nil {
			config.Tracing.SampleRatio = f
		}
	}
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
