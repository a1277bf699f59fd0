package config

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds every setting read from the environment and the optional .env file.
type Config struct {
	Server      Server
	Database    Database
	Redis       Redis
	RabbitMQ    RabbitMQ
	Gemini      Gemini
	JWTSecret   string
	LogLevel    string
	CORSOrigins []string
}

type Server struct {
	Port    string
	GinMode string
}

// Database selects the driver and connection settings.
type Database struct {
	Driver   string // postgres|sqlite
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	DSN      string // overrides the fields above when set; file path for sqlite
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type RabbitMQ struct {
	URI      string
	Exchange string
}

type Gemini struct {
	APIKey string
	Model  string
}

// NewConfig loads the configuration, applying defaults for anything unset.
func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("RABBITMQ_EXCHANGE", "learnhub.events")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("CORS_ORIGINS", "*")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.GinMode = viper.GetString("GIN_MODE")
	config.LogLevel = viper.GetString("LOG_LEVEL")

	config.Database.Driver = strings.ToLower(viper.GetString("DATABASE_DRIVER"))
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.DSN = viper.GetString("DATABASE_DSN")

	config.Redis.Addr = viper.GetString("REDIS_ADDR")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")
	config.Redis.DB = viper.GetInt("REDIS_DB")

	config.RabbitMQ.URI = viper.GetString("RABBITMQ_URI")
	config.RabbitMQ.Exchange = viper.GetString("RABBITMQ_EXCHANGE")

	config.Gemini.APIKey = viper.GetString("GEMINI_API_KEY")
	config.Gemini.Model = viper.GetString("GEMINI_MODEL")

	config.JWTSecret = viper.GetString("JWT_SECRET")
	config.CORSOrigins = splitCSV(viper.GetString("CORS_ORIGINS"))

	log.Info().
		Str("port", config.Server.Port).
		Str("dbDriver", config.Database.Driver).
		Str("dbHost", config.Database.Host).
		Str("dbName", config.Database.Name).
		Bool("redisEnabled", config.Redis.Addr != "").
		Bool("rabbitmqEnabled", config.RabbitMQ.URI != "").
		Bool("geminiEnabled", config.Gemini.APIKey != "").
		Msg("Config loaded")
	if config.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set; every authenticated route will answer 401")
	}
	return &config, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
