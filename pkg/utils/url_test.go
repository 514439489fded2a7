package utils

import "testing"

func TestValidateFeedURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"http://127.0.0.1:8000/", false},
		{"https://feeds.example.org/threats", false},
		{"127.0.0.1:8000", true},
		{"/threats", true},
		{"file:///tmp/threats.html", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if err := ValidateFeedURL(tt.url); (err != nil) != tt.wantErr {
				t.Errorf("ValidateFeedURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestHostLabel(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"http://127.0.0.1:8000/", "127.0.0.1"},
		{"https://feeds.example.org/x", "feeds.example.org"},
		{"not a url", "unknown"},
	}
	for _, tt := range tests {
		if got := HostLabel(tt.url); got != tt.want {
			t.Errorf("HostLabel(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
