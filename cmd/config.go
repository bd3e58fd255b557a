package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPPort            = "8080"
	defaultOutboxRelaySchedule = "@every 5s"
	defaultCODMonitorSchedule  = "@every 10m"
)

type Config struct {
	HTTPPort                string
	DBHost                  string
	DBPort                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	DBSslMode               string
	LogsDirectory           string
	KafkaHost               string
	KafkaParcelChangedTopic string
	OutboxRelaySchedule     string
	CODMonitorSchedule      string
}

// LoadConfig reads the environment, after merging envFile into it when that
// file exists. Variables already set in the process win over the file.
func LoadConfig(envFile string) Config {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}
	return Config{
		HTTPPort:                envOr("HTTP_PORT", defaultHTTPPort),
		DBHost:                  os.Getenv("DB_HOST"),
		DBPort:                  os.Getenv("DB_PORT"),
		DBUser:                  os.Getenv("DB_USER"),
		DBPassword:              os.Getenv("DB_PASSWORD"),
		DBName:                  os.Getenv("DB_NAME"),
		DBSslMode:               envOr("DB_SSLMODE", "disable"),
		LogsDirectory:           os.Getenv("LOGS_DIRECTORY"),
		KafkaHost:               os.Getenv("KAFKA_HOST"),
		KafkaParcelChangedTopic: os.Getenv("KAFKA_PARCEL_CHANGED_TOPIC"),
		OutboxRelaySchedule:     envOr("OUTBOX_RELAY_SCHEDULE", defaultOutboxRelaySchedule),
		CODMonitorSchedule:      envOr("COD_MONITOR_SCHEDULE", defaultCODMonitorSchedule),
	}
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits KAFKA_HOST on commas.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
