package service

import (
	"context"

	"github.com/WangYihang/discovery-pinger/pkg/domain/entity"
)

// SuffixClassifier classifies domain names against a public suffix dataset
type SuffixClassifier interface {
	// IsPublicSuffix checks if name is exactly a publicly registrable suffix
	IsPublicSuffix(name string) bool
	// Registrable returns the registrable domain (eTLD+1) of name, if any
	Registrable(name string) (string, error)
}

// ScopeFilter restricts which domain levels may be reported to
type ScopeFilter interface {
	// Allows checks if name equals or is below a configured suffix
	Allows(name string) bool
}

// Reporter notifies a single discovery host
type Reporter interface {
	// Report makes one best-effort attempt; failures are absorbed into the outcome
	Report(ctx context.Context, target string) entity.Outcome
}

// NameChecker answers whether a host name exists before dialing it
type NameChecker interface {
	// Exists returns false with a nil error when the name is known not to resolve
	Exists(ctx context.Context, name string) (bool, error)
}
