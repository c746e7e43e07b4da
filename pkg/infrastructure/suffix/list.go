package suffix

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	wpsl "github.com/weppos/publicsuffix-go/publicsuffix"
)

// List implements service.SuffixClassifier using a public suffix list
type List struct {
	list    *wpsl.List
	options *wpsl.FindOptions
}

// Config holds suffix list configuration
type Config struct {
	// File is a local public_suffix_list.dat, takes precedence over URL
	File string
	// URL is fetched once at start-up when File is empty
	URL string
	// Timeout bounds the URL fetch
	Timeout time.Duration
	// IgnorePrivate classifies using ICANN rules only
	IgnorePrivate bool
}

// NewList creates a classifier backed by the embedded list
func NewList(ignorePrivate bool) *List {
	return newList(wpsl.DefaultList, ignorePrivate)
}

func newList(l *wpsl.List, ignorePrivate bool) *List {
	// No default rule: a name matched only by the implicit "*" rule is not public
	return &List{
		list:    l,
		options: &wpsl.FindOptions{IgnorePrivate: ignorePrivate, DefaultRule: nil},
	}
}

// Load creates a classifier from config, falling back to the embedded list
func Load(ctx context.Context, config Config) (*List, error) {
	switch {
	case config.File != "":
		l, err := wpsl.NewListFromFile(config.File, &wpsl.ParserOption{PrivateDomains: true})
		if err != nil {
			return nil, fmt.Errorf("failed to load suffix list %s: %w", config.File, err)
		}
		return newList(l, config.IgnorePrivate), nil
	case config.URL != "":
		l, err := fetch(ctx, config.URL, config.Timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch suffix list %s: %w", config.URL, err)
		}
		return newList(l, config.IgnorePrivate), nil
	default:
		return NewList(config.IgnorePrivate), nil
	}
}

// Parse creates a classifier from list source text
func Parse(r io.Reader, ignorePrivate bool) (*List, error) {
	l := wpsl.NewList()
	if _, err := l.Load(r, &wpsl.ParserOption{PrivateDomains: true}); err != nil {
		return nil, err
	}
	return newList(l, ignorePrivate), nil
}

func fetch(ctx context.Context, url string, timeout time.Duration) (*wpsl.List, error) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	l := wpsl.NewList()
	if _, err := l.Load(resp.Body, &wpsl.ParserOption{PrivateDomains: true}); err != nil {
		return nil, err
	}
	return l, nil
}

// IsPublicSuffix implements service.SuffixClassifier
func (l *List) IsPublicSuffix(name string) bool {
	name = strings.ToLower(strings.TrimSuffix(name, "."))
	rule := l.list.Find(name, l.options)
	if rule == nil {
		return false
	}

	switch rule.Type {
	case wpsl.NormalType:
		return rule.Value == name
	case wpsl.WildcardType:
		// "*.ck" is stored as "ck" and covers exactly one extra label
		prefix, ok := strings.CutSuffix(name, "."+rule.Value)
		return ok && prefix != "" && !strings.Contains(prefix, ".")
	default:
		// exception rules mark registrable names
		return false
	}
}

// Registrable implements service.SuffixClassifier
func (l *List) Registrable(name string) (string, error) {
	name = strings.ToLower(strings.TrimSuffix(name, "."))
	return wpsl.DomainFromListWithOptions(l.list, name, l.options)
}
