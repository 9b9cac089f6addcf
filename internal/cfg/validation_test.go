package cfg

import (
	"strings"
	"testing"
	"time"
)

func createValidSettings() *Settings {
	s := Defaults()
	return &s
}

func TestValidateSettings_ValidConfig(t *testing.T) {
	if err := validateSettings(createValidSettings()); err != nil {
		t.Errorf("expected defaults to be valid, got: %v", err)
	}
}

func TestValidateSettings_InvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 65536} {
		s := createValidSettings()
		s.Server.Port = port

		err := validateSettings(s)
		if err == nil {
			t.Errorf("expected error for port %d", port)
			continue
		}
		if !strings.Contains(err.Error(), "Port") {
			t.Errorf("expected error to name the port field, got: %v", err)
		}
	}
}

func TestValidateSettings_EmptyModelPath(t *testing.T) {
	s := createValidSettings()
	s.Model.Path = ""

	if err := validateSettings(s); err == nil {
		t.Error("expected error for empty model path")
	}
}

func TestValidateSettings_EmptyBindAddr(t *testing.T) {
	s := createValidSettings()
	s.Server.BindAddr = ""

	if err := validateSettings(s); err == nil {
		t.Error("expected error for empty bind address")
	}
}

func TestValidateSettings_LogFormat(t *testing.T) {
	s := createValidSettings()
	s.Log.Format = "xml"

	if err := validateSettings(s); err == nil {
		t.Error("expected error for unknown log format")
	}
}

func TestValidateSettings_Timeouts(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Settings)
		wantErr bool
	}{
		{"read timeout too short", func(s *Settings) { s.Server.ReadTimeout = 500 * time.Millisecond }, true},
		{"write timeout too long", func(s *Settings) { s.Server.WriteTimeout = time.Hour }, true},
		{"idle timeout zero", func(s *Settings) { s.Server.IdleTimeout = 0 }, true},
		{"shutdown timeout lower bound", func(s *Settings) { s.Server.ShutdownTimeout = time.Second }, false},
		{"shutdown timeout upper bound", func(s *Settings) { s.Server.ShutdownTimeout = 10 * time.Minute }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := createValidSettings()
			tt.mutate(s)

			err := validateSettings(s)
			if tt.wantErr && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
