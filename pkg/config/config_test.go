package config

import "testing"

func validServerConfig() *ServerConfig {
	return &ServerConfig{
		Host:              "0.0.0.0",
		Port:              DefaultServerPort,
		MaxConns:          DefaultMaxConns,
		ReadTimeoutSecs:   DefaultReadTimeoutSecs,
		WriteTimeoutSecs:  DefaultWriteTimeoutSecs,
		SweepIntervalSecs: DefaultSweepIntervalSecs,
		RehashSteps:       DefaultRehashSteps,
		LogLevel:          "info",
	}
}

func TestServerConfigValidateAcceptsDefaults(t *testing.T) {
	if err := validServerConfig().Validate(); err != nil {
		t.Fatalf("Validate() error = %v; want nil", err)
	}
}

func TestServerConfigValidateRejectsBadPort(t *testing.T) {
	cfg := validServerConfig()
	cfg.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate() with out-of-range port should return an error")
	}
}

func TestServerConfigValidateRejectsBadLogLevel(t *testing.T) {
	cfg := validServerConfig()
	cfg.LogLevel = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate() with unknown log level should return an error")
	}
}

func TestServerConfigValidateRejectsNonPositiveSweepInterval(t *testing.T) {
	cfg := validServerConfig()
	cfg.SweepIntervalSecs = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate() with zero sweep interval should return an error")
	}
}

func TestServerConfigAddress(t *testing.T) {
	cfg := &ServerConfig{Host: "0.0.0.0", Port: 2203}
	if got := cfg.Address(); got != "0.0.0.0:2203" {
		t.Fatalf("Address() = %q; want 0.0.0.0:2203", got)
	}
}

func TestClientConfigValidateRejectsMissingColon(t *testing.T) {
	cfg := &ClientConfig{
		Addr:             "localhost",
		MaxConns:         1,
		ConnTimeoutSecs:  1,
		ReadTimeoutSecs:  1,
		WriteTimeoutSecs: 1,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate() with no colon in address should return an error")
	}
}

func TestClientConfigValidateAcceptsWellFormedAddr(t *testing.T) {
	cfg := &ClientConfig{
		Addr:             "localhost:2203",
		MaxConns:         1,
		ConnTimeoutSecs:  1,
		ReadTimeoutSecs:  1,
		WriteTimeoutSecs: 1,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v; want nil", err)
	}
}
