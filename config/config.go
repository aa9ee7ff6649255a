package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is loaded once at startup and passed into every constructor.
type Config struct {
	Port          string          `mapstructure:"port"`
	MongoURI      string          `mapstructure:"MONGODB_URI"`
	MongoDatabase string          `mapstructure:"mongo_database"`
	UploadDir     string          `mapstructure:"upload_dir"`
	JWTSecret     string          `mapstructure:"JWT_SECRET"`
	AIProvider    string          `mapstructure:"ai_provider"` // openai | gemini
	OpenAI        OpenAIConfig    `mapstructure:"openai"`
	Gemini        GeminiConfig    `mapstructure:"gemini"`
	Weaviate      WeaviateConfig  `mapstructure:"weaviate"`
	Retrieval     RetrievalConfig `mapstructure:"retrieval"`
}

type OpenAIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"OPENAI_API_KEY"`
	Model          string `mapstructure:"model"`
	EmbeddingModel string `mapstructure:"embedding_model"`
	EmbeddingDim   int    `mapstructure:"embedding_dim"`
}

type GeminiConfig struct {
	APIKeys []string `mapstructure:"api_keys"`
	Model   string   `mapstructure:"model"`
}

type WeaviateConfig struct {
	Host   string `mapstructure:"host"`
	APIKey string `mapstructure:"WEAVIATE_APIKEY"`
}

// RetrievalConfig tunes the cascading search. Zero values are replaced by
// the design defaults in ApplyDefaults.
type RetrievalConfig struct {
	SimilarityThreshold float64       `mapstructure:"similarity_threshold"`
	VectorLimit         int           `mapstructure:"vector_limit"`
	EnhancedLimit       int           `mapstructure:"enhanced_limit"`
	BasicLimit          int           `mapstructure:"basic_limit"`
	ContentBudget       int           `mapstructure:"content_budget"`
	CallTimeout         time.Duration `mapstructure:"call_timeout"`
}

// ApplyDefaults fills unset retrieval knobs with the documented defaults.
func (r *RetrievalConfig) ApplyDefaults() {
	if r.SimilarityThreshold == 0 {
		r.SimilarityThreshold = 0.3
	}
	if r.VectorLimit == 0 {
		r.VectorLimit = 8
	}
	if r.EnhancedLimit == 0 {
		r.EnhancedLimit = 8
	}
	if r.BasicLimit == 0 {
		r.BasicLimit = 5
	}
	if r.ContentBudget == 0 {
		r.ContentBudget = 15000
	}
	if r.CallTimeout == 0 {
		r.CallTimeout = 15 * time.Second
	}
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.BindEnv("MONGODB_URI")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("openai.OPENAI_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("weaviate.WEAVIATE_APIKEY", "WEAVIATE_APIKEY")

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.Retrieval.ApplyDefaults()

	if config.MongoDatabase == "" {
		config.MongoDatabase = "docchat"
	}
	if config.OpenAI.EmbeddingDim == 0 {
		config.OpenAI.EmbeddingDim = 1536
	}

	return &config, nil
}
