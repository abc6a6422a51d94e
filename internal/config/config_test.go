package config

import (
	"strings"
	"testing"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(`{}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Database.Path != "swotcoach.db" {
		t.Errorf("Path = %q, want swotcoach.db", cfg.Database.Path)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.HTTP.Port)
	}
	if cfg.Schedule.GenerateAt != "23:30" {
		t.Errorf("GenerateAt = %q, want 23:30", cfg.Schedule.GenerateAt)
	}
}

func TestParse_MySQL(t *testing.T) {
	yaml := `
database:
  driver: mysql
  name: swotcoach
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Database.Host != "127.0.0.1" {
		t.Errorf("Host = %q, want 127.0.0.1", cfg.Database.Host)
	}
	if cfg.Database.Port != 3306 {
		t.Errorf("Port = %d, want 3306", cfg.Database.Port)
	}
	if cfg.Database.User != "root" {
		t.Errorf("User = %q, want root", cfg.Database.User)
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantMsg string
	}{
		{
			"unknown driver",
			"database:\n  driver: postgres\n",
			"not supported",
		},
		{
			"mysql without name",
			"database:\n  driver: mysql\n",
			"database.name is required",
		},
		{
			"bad generate_at",
			"schedule:\n  generate_at: \"25:00\"\n",
			"invalid hour",
		},
		{
			"bad location",
			"schedule:\n  location: Mars/Olympus\n",
			"not a valid timezone",
		},
		{
			"slack token without channel",
			"notify:\n  slack:\n    token: xoxb-abc\n",
			"notify.slack.channel is required",
		},
	}
	for _, tt := range tests {
		_, err := Parse([]byte(tt.yaml))
		if err == nil {
			t.Errorf("%s: Parse succeeded, want error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantMsg) {
			t.Errorf("%s: error %q, want it to contain %q", tt.name, err, tt.wantMsg)
		}
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		hour    int
		minute  int
		wantErr bool
	}{
		{"23:30", 23, 30, false},
		{"00:00", 0, 0, false},
		{"7:05", 7, 5, false},
		{"24:00", 0, 0, true},
		{"12:60", 0, 0, true},
		{"noon", 0, 0, true},
		{"12", 0, 0, true},
	}
	for _, tt := range tests {
		h, m, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && (h != tt.hour || m != tt.minute) {
			t.Errorf("ParseClock(%q) = %d:%d, want %d:%d", tt.in, h, m, tt.hour, tt.minute)
		}
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("database: [")); err == nil {
		t.Error("Parse(bad yaml) succeeded, want error")
	}
}
