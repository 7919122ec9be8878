package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	DB struct {
		// Driver is "postgres" or "sqlite".
		Driver string `mapstructure:"driver"`
		DSN    string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string        `mapstructure:"addr"`
		Password string        `mapstructure:"password"`
		TTL      time.Duration `mapstructure:"ttl"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		GroupID string   `mapstructure:"group_id"`
	} `mapstructure:"kafka"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
		Folder    string `mapstructure:"folder"`
	} `mapstructure:"cloudinary"`
	LLM struct {
		APIKey  string        `mapstructure:"api_key"`
		BaseURL string        `mapstructure:"base_url"`
		Model   string        `mapstructure:"model"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"llm"`
	Builder struct {
		SaveDelay time.Duration `mapstructure:"save_delay"`
	} `mapstructure:"builder"`
	RateLimit struct {
		GeneratePerMinute int `mapstructure:"generate_per_minute"`
	} `mapstructure:"ratelimit"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("redis.ttl", 24*time.Hour)
	v.SetDefault("kafka.group_id", "portfolio-renderer-group")
	v.SetDefault("cloudinary.folder", "resume-builder/profile-images")
	v.SetDefault("llm.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.model", "llama-3.3-70b-versatile")
	v.SetDefault("llm.timeout", 30*time.Second)
	v.SetDefault("builder.save_delay", 2*time.Second)
	v.SetDefault("ratelimit.generate_per_minute", 20)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
}

// LoadConfig reads .env, then an optional config.yaml under paths, then the environment.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	setDefaults(v)

	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err = v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("db.driver", "DB_DRIVER")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.ttl", "REDIS_TTL")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("kafka.group_id", "KAFKA_GROUP_ID")

	v.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	v.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	v.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")
	v.BindEnv("cloudinary.folder", "CLOUDINARY_FOLDER")

	v.BindEnv("llm.api_key", "GROQ_API_KEY")
	v.BindEnv("llm.base_url", "LLM_BASE_URL")
	v.BindEnv("llm.model", "LLM_MODEL")
	v.BindEnv("llm.timeout", "LLM_TIMEOUT")

	v.BindEnv("builder.save_delay", "BUILDER_SAVE_DELAY")
	v.BindEnv("ratelimit.generate_per_minute", "RATELIMIT_GENERATE_PER_MINUTE")
	v.BindEnv("cors.allowed_origins", "CORS_ALLOWED_ORIGINS")
	v.BindEnv("jaeger.otlp_endpoint", "OTLP_ENDPOINT")

	err = v.Unmarshal(&cfg)
	if err != nil {
		return
	}

	// Comma separated env values arrive as a single element.
	cfg.Kafka.Brokers = splitList(cfg.Kafka.Brokers)
	cfg.CORS.AllowedOrigins = splitList(cfg.CORS.AllowedOrigins)
	return
}

func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
