package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ipv4Literal is deliberately loose: it only needs to skip addresses, not validate them
var ipv4Literal = regexp.MustCompile(`^[0-9.]+$`)

// Classifier decides whether a host name is a literal address
type Classifier struct{}

// NewClassifier creates classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// IsIPv6Literal checks for a bracketed or bare IPv6 address
func (c *Classifier) IsIPv6Literal(host string) bool {
	return strings.HasPrefix(host, "[") || strings.Contains(host, ":")
}

// IsIPv4Literal checks for a dotted-digit address
func (c *Classifier) IsIPv4Literal(host string) bool {
	return ipv4Literal.MatchString(host)
}

// IsAddress checks for either literal form
func (c *Classifier) IsAddress(host string) bool {
	return c.IsIPv6Literal(host) || c.IsIPv4Literal(host)
}

// Normalizer normalizes host names
type Normalizer struct{}

// NewNormalizer creates normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize converts host to lowercase
func (n *Normalizer) Normalize(host string) string {
	return strings.ToLower(strings.TrimSpace(host))
}

// HostFromURL extracts the host of a base URL. IPv6 literals keep their
// brackets so they can be recognised as addresses.
func HostFromURL(baseURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("base URL %q has no host", baseURL)
	}

	host := u.Hostname()
	if strings.HasPrefix(u.Host, "[") {
		host = "[" + host + "]"
	}
	return NewNormalizer().Normalize(host), nil
}
