package camera

import "testing"

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative index", func(c *Config) { c.Index = -1 }},
		{"tiny resolution", func(c *Config) { c.Width = 10 }},
		{"zero quality", func(c *Config) { c.Quality = 0 }},
		{"quality over 100", func(c *Config) { c.Quality = 101 }},
		{"negative warmup", func(c *Config) { c.WarmupFrames = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestDeviceRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Index = -2

	if _, err := NewDevice(cfg); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestDeviceCaptureBeforeOpen(t *testing.T) {
	d, err := NewDevice(DefaultConfig())
	if err != nil {
		t.Fatalf("NewDevice failed: %v", err)
	}

	if _, err := d.CaptureJPEG(); err == nil {
		t.Error("expected error capturing from unopened device")
	}

	// Release on an unopened device is a no-op
	d.Release()
}
