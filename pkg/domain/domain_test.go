package domain

import "testing"

func TestClassifierIsAddress(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		expected bool
	}{
		{"ipv4", "192.168.0.1", true},
		{"loose ipv4", "1.2.3", true},
		{"bracketed ipv6", "[::1]", true},
		{"bare ipv6", "fe80::1", true},
		{"domain", "test.sfbay.sun.com", false},
		{"digit label", "1password.com", false},
		{"single label", "localhost", false},
	}

	c := NewClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := c.IsAddress(tt.host); result != tt.expected {
				t.Errorf("IsAddress(%q) = %v, want %v", tt.host, result, tt.expected)
			}
		})
	}
}

func TestNormalizerNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"uppercase", "EXAMPLE.COM", "example.com"},
		{"spaces", "  example.com  ", "example.com"},
		{"mixed", "  EXAMPLE.COM  ", "example.com"},
	}

	n := NewNormalizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := n.Normalize(tt.input); result != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestHostFromURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		expected string
		wantErr  bool
	}{
		{"plain", "http://test.sfbay.sun.com/", "test.sfbay.sun.com", false},
		{"with port", "https://CI.Example.com:8443/jenkins/", "ci.example.com", false},
		{"ipv4", "http://10.0.0.1:8080/", "10.0.0.1", false},
		{"ipv6", "http://[::1]:8080/", "[::1]", false},
		{"no host", "/jenkins/", "", true},
		{"garbage", "http://%zz/", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, err := HostFromURL(tt.baseURL)
			if tt.wantErr {
				if err == nil {
					t.Errorf("HostFromURL(%q) = %q, want error", tt.baseURL, host)
				}
				return
			}
			if err != nil {
				t.Fatalf("HostFromURL(%q) error: %v", tt.baseURL, err)
			}
			if host != tt.expected {
				t.Errorf("HostFromURL(%q) = %q, want %q", tt.baseURL, host, tt.expected)
			}
		})
	}
}
