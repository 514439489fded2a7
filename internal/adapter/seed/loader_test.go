package seed

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/user/threat-log-analyzer/internal/entity"
)

func TestParseThreatMapping(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    entity.ThreatMapping
		wantErr bool
	}{
		{"object", `{"10.0.0.1": "botnet", "10.0.0.2": "scanner"}`, entity.ThreatMapping{"10.0.0.1": "botnet", "10.0.0.2": "scanner"}, false},
		{"empty object", `{}`, entity.ThreatMapping{}, false},
		{"utf-8 value", `{"1.2.3.4": "təhlükəli"}`, entity.ThreatMapping{"1.2.3.4": "təhlükəli"}, false},
		{"array rejected", `["10.0.0.1"]`, nil, true},
		{"non-string value rejected", `{"10.0.0.1": 5}`, nil, true},
		{"malformed", `{"10.0.0.1":`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseThreatMapping([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseThreatMapping() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFailedAttemptsRejectsStrings(t *testing.T) {
	if _, err := ParseFailedAttempts([]byte(`{"10.0.0.1": "six"}`)); err == nil {
		t.Error("expected error for string count")
	}
}

func TestLoadThreatMappingMissingFile(t *testing.T) {
	if _, err := LoadThreatMapping(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadThreatMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "threat_seed.json")
	if err := os.WriteFile(path, []byte(`{"198.51.100.7": "brute force"}`), 0o644); err != nil {
		t.Fatalf("failed to write seed: %v", err)
	}
	got, err := LoadThreatMapping(path)
	if err != nil {
		t.Fatalf("LoadThreatMapping failed: %v", err)
	}
	if got["198.51.100.7"] != "brute force" {
		t.Errorf("unexpected mapping: %v", got)
	}
}
