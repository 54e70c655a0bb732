package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	GinMode         string
	MongoURI        string
	MongoDatabase   string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RabbitMQURI     string
	RabbitExchange  string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OpenAIModel     string
	GitHubToken     string
	GitHubAPIURL    string
	GitHubRepoOwner string
	GitHubRepoName  string
	JWTSecret       string
	ConsulAddress   string
	ServiceID       string
	ServiceName     string
	ServiceAddress  string
	ServiceVersion  string
}

var AppConfig *Config

func LoadConfig() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	redisDB, _ := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))

	AppConfig = &Config{
		Port:            getEnvOrDefault("PORT", "8080"),
		GinMode:         getEnvOrDefault("GIN_MODE", "debug"),
		MongoURI:        getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnvOrDefault("MONGO_DATABASE", "hyperhive"),
		RedisAddr:       getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnvOrDefault("REDIS_PWD", ""),
		RedisDB:         redisDB,
		RabbitMQURI:     getEnvOrDefault("RABBITMQ_URI", ""),
		RabbitExchange:  getEnvOrDefault("RABBITMQ_EXCHANGE", "hyperhive.events"),
		OpenAIAPIKey:    getEnvOrDefault("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:     getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		GitHubToken:     getEnvOrDefault("GITHUB_ACCESS_TOKEN", ""),
		GitHubAPIURL:    getEnvOrDefault("GITHUB_API_URL", "https://api.github.com"),
		GitHubRepoOwner: getEnvOrDefault("GITHUB_REPO_OWNER", ""),
		GitHubRepoName:  getEnvOrDefault("GITHUB_REPO_NAME", ""),
		JWTSecret:       getEnvOrDefault("JWT_SECRET", "your-jwt-secret-key"),
		ConsulAddress:   getEnvOrDefault("CONSUL_ADDR", ""),
		ServiceID:       getEnvOrDefault("SERVICE_ID", "hyperhive-backend-1"),
		ServiceName:     getEnvOrDefault("SERVICE_NAME", "hyperhive-backend"),
		ServiceAddress:  getEnvOrDefault("SERVICE_ADDRESS", "localhost"),
		ServiceVersion:  getEnvOrDefault("SERVICE_VERSION", "1.0.0"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
