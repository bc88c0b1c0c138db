package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"ARTIE_TRANSPORT", "ARTIE_SERIAL_PORT", "ARTIE_SERIAL_BAUD",
		"ARTIE_BACKEND", "ARTIE_OLLAMA_HOST", "ARTIE_MODEL",
		"ARTIE_TEMPERATURE", "ARTIE_TOP_P", "ARTIE_GATEWAY_ADDR",
		"ARTIE_HISTORY_PATH", "ARTIE_VERBOSE",
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Transport != TransportSerial {
		t.Fatalf("transport=%q", cfg.Transport)
	}
	if cfg.SerialPort != DefaultSerialPort || cfg.SerialBaud != DefaultSerialBaud {
		t.Fatalf("serial=%q baud=%d", cfg.SerialPort, cfg.SerialBaud)
	}
	if cfg.Backend != BackendOllama || cfg.OllamaHost != DefaultOllamaHost {
		t.Fatalf("backend=%q host=%q", cfg.Backend, cfg.OllamaHost)
	}
	if cfg.Model != DefaultModel || cfg.Temperature != DefaultTemperature || cfg.TopP != DefaultTopP {
		t.Fatalf("model=%q temp=%v topp=%v", cfg.Model, cfg.Temperature, cfg.TopP)
	}
	if cfg.HistoryPath != "" {
		t.Fatalf("history=%q", cfg.HistoryPath)
	}
}

func TestLoadOverridesAndTrims(t *testing.T) {
	t.Setenv("ARTIE_TRANSPORT", "mqtt")
	t.Setenv("ARTIE_OLLAMA_HOST", " http://box:11434/ ")
	t.Setenv("ARTIE_SERIAL_BAUD", "115200")
	t.Setenv("ARTIE_VERBOSE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Transport != TransportMQTT {
		t.Fatalf("transport=%q", cfg.Transport)
	}
	if cfg.OllamaHost != "http://box:11434" {
		t.Fatalf("host=%q", cfg.OllamaHost)
	}
	if cfg.SerialBaud != 115200 {
		t.Fatalf("baud=%d", cfg.SerialBaud)
	}
	if !cfg.Verbose {
		t.Fatalf("verbose=false")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("ARTIE_TRANSPORT", "carrier-pigeon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for bad transport")
	}
	t.Setenv("ARTIE_TRANSPORT", "serial")

	t.Setenv("ARTIE_SERIAL_BAUD", "fast")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for bad baud")
	}
	t.Setenv("ARTIE_SERIAL_BAUD", "")

	t.Setenv("ARTIE_TOP_P", "1.5")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for bad top_p")
	}
}
