package entity

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

const (
	maxNameLength  = 253
	maxLabelLength = 63
)

// ErrEmptyName is returned when parsing an empty host name
var ErrEmptyName = errors.New("empty domain name")

// hostProfile maps IDNs like lookup does but allows underscores in labels
var hostProfile = idna.New(
	idna.MapForLookup(),
	idna.StrictDomainName(false),
	idna.Transitional(false),
)

var labelPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Name is a parsed domain name, most-specific label first
type Name struct {
	labels []string
}

// ParseName parses and validates a host name
func ParseName(s string) (Name, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".")
	if s == "" {
		return Name{}, ErrEmptyName
	}

	ascii, err := hostProfile.ToASCII(s)
	if err != nil {
		return Name{}, fmt.Errorf("invalid domain name %q: %w", s, err)
	}
	ascii = strings.ToLower(ascii)

	if len(ascii) > maxNameLength {
		return Name{}, fmt.Errorf("invalid domain name %q: longer than %d characters", s, maxNameLength)
	}

	labels := strings.Split(ascii, ".")
	for i, label := range labels {
		if len(label) == 0 || len(label) > maxLabelLength {
			return Name{}, fmt.Errorf("invalid domain name %q: bad label length at position %d", s, i)
		}
		if !labelPattern.MatchString(label) {
			return Name{}, fmt.Errorf("invalid domain name %q: bad character in label %q", s, label)
		}
	}

	// A numeric final label would make the name indistinguishable from an address
	last := labels[len(labels)-1]
	if last[0] >= '0' && last[0] <= '9' {
		return Name{}, fmt.Errorf("invalid domain name %q: top-level label starts with a digit", s)
	}

	return Name{labels: labels}, nil
}

// MustParseName is like ParseName but panics on error
func MustParseName(s string) Name {
	n, err := ParseName(s)
	if err != nil {
		panic(err)
	}
	return n
}

// Labels returns a copy of the labels
func (n Name) Labels() []string {
	out := make([]string, len(n.labels))
	copy(out, n.labels)
	return out
}

// HasParent reports whether more than one label remains
func (n Name) HasParent() bool {
	return len(n.labels) > 1
}

// Parent drops the leftmost label. It panics if the name has no parent.
func (n Name) Parent() Name {
	if !n.HasParent() {
		panic(fmt.Sprintf("domain name %q has no parent", n.String()))
	}
	return Name{labels: n.labels[1:]}
}

// Child prepends label to the name
func (n Name) Child(label string) Name {
	labels := make([]string, 0, len(n.labels)+1)
	labels = append(labels, strings.ToLower(label))
	labels = append(labels, n.labels...)
	return Name{labels: labels}
}

// String returns the dotted form
func (n Name) String() string {
	return strings.Join(n.labels, ".")
}

// DiscoveryLabel returns the leftmost label of a discovery endpoint for product
func DiscoveryLabel(product string) string {
	return "discover-" + strings.ToLower(product)
}

// Outcome is the result of a single report attempt
type Outcome int

const (
	// OutcomeDelivered means the connection and response read succeeded
	OutcomeDelivered Outcome = iota
	// OutcomeNoSuchHost means the discovery name did not resolve
	OutcomeNoSuchHost
	// OutcomeFailed covers every other network or I/O failure
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDelivered:
		return "delivered"
	case OutcomeNoSuchHost:
		return "no_such_host"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}
