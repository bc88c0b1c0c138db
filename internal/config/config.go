package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	DefaultSerialPort  = "/dev/ttyUSB0"
	DefaultSerialBaud  = 9600
	DefaultOllamaHost  = "http://127.0.0.1:11434"
	DefaultModel       = "gemma3:4b"
	DefaultTemperature = 0.6
	DefaultTopP        = 0.9
	DefaultPromptFile  = "system_prompt.txt"
	DefaultGatewayAddr = "127.0.0.1:8765"

	DefaultMQTTBroker         = "tcp://localhost:1883"
	DefaultMQTTClientID       = "artie-driver"
	DefaultMQTTTelemetryTopic = "artie/telemetry"
	DefaultMQTTCommandTopic   = "artie/command"
)

// Transport and backend selectors accepted by Load.
const (
	TransportSerial = "serial"
	TransportMQTT   = "mqtt"
	TransportSim    = "sim"

	BackendOllama = "ollama"
	BackendOpenAI = "openai"
)

type Config struct {
	Transport  string
	SerialPort string
	SerialBaud int

	MQTTBroker         string
	MQTTClientID       string
	MQTTTelemetryTopic string
	MQTTCommandTopic   string

	Backend       string
	OllamaHost    string
	OpenAIBaseURL string
	OpenAIAPIKey  string
	Model         string
	Temperature   float64
	TopP          float64

	PromptFile  string
	GatewayAddr string
	HistoryPath string

	Verbose bool
}

// Load builds the config from ARTIE_* environment variables, applying
// defaults. Call LoadDotEnv first if .env files should be honored.
func Load() (Config, error) {
	cfg := Config{
		Transport:          envOr("ARTIE_TRANSPORT", TransportSerial),
		SerialPort:         envOr("ARTIE_SERIAL_PORT", DefaultSerialPort),
		SerialBaud:         DefaultSerialBaud,
		MQTTBroker:         envOr("ARTIE_MQTT_BROKER", DefaultMQTTBroker),
		MQTTClientID:       envOr("ARTIE_MQTT_CLIENT_ID", DefaultMQTTClientID),
		MQTTTelemetryTopic: envOr("ARTIE_MQTT_TELEMETRY_TOPIC", DefaultMQTTTelemetryTopic),
		MQTTCommandTopic:   envOr("ARTIE_MQTT_COMMAND_TOPIC", DefaultMQTTCommandTopic),
		Backend:            envOr("ARTIE_BACKEND", BackendOllama),
		OllamaHost:         strings.TrimRight(envOr("ARTIE_OLLAMA_HOST", DefaultOllamaHost), "/"),
		OpenAIBaseURL:      strings.TrimRight(strings.TrimSpace(os.Getenv("ARTIE_OPENAI_BASE_URL")), "/"),
		OpenAIAPIKey:       strings.TrimSpace(os.Getenv("ARTIE_OPENAI_API_KEY")),
		Model:              envOr("ARTIE_MODEL", DefaultModel),
		Temperature:        DefaultTemperature,
		TopP:               DefaultTopP,
		PromptFile:         envOr("ARTIE_PROMPT_FILE", DefaultPromptFile),
		GatewayAddr:        envOr("ARTIE_GATEWAY_ADDR", DefaultGatewayAddr),
		HistoryPath:        strings.TrimSpace(os.Getenv("ARTIE_HISTORY_PATH")),
	}

	if v := strings.TrimSpace(os.Getenv("ARTIE_SERIAL_BAUD")); v != "" {
		baud, err := strconv.Atoi(v)
		if err != nil || baud <= 0 {
			return Config{}, fmt.Errorf("invalid ARTIE_SERIAL_BAUD: %q", v)
		}
		cfg.SerialBaud = baud
	}
	if v := strings.TrimSpace(os.Getenv("ARTIE_TEMPERATURE")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return Config{}, fmt.Errorf("invalid ARTIE_TEMPERATURE: %q", v)
		}
		cfg.Temperature = f
	}
	if v := strings.TrimSpace(os.Getenv("ARTIE_TOP_P")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 1 {
			return Config{}, fmt.Errorf("invalid ARTIE_TOP_P: %q", v)
		}
		cfg.TopP = f
	}
	if v := strings.TrimSpace(os.Getenv("ARTIE_VERBOSE")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ARTIE_VERBOSE: %q", v)
		}
		cfg.Verbose = b
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the selector fields. Callers that override fields after
// Load (CLI flags) should re-validate.
func (c Config) Validate() error {
	switch c.Transport {
	case TransportSerial, TransportMQTT, TransportSim:
	default:
		return fmt.Errorf("invalid transport: %q (want serial, mqtt or sim)", c.Transport)
	}
	switch c.Backend {
	case BackendOllama, BackendOpenAI:
	default:
		return fmt.Errorf("invalid backend: %q (want ollama or openai)", c.Backend)
	}
	return nil
}

func envOr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}
