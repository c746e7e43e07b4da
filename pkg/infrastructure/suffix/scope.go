package suffix

import (
	"strings"

	domain_suffix_trie "github.com/golang-infrastructure/go-domain-suffix-trie"
)

// Scope implements service.ScopeFilter with a domain suffix trie
type Scope struct {
	tree  *domain_suffix_trie.DomainSuffixTrieNode[bool]
	empty bool
}

// NewScope creates a scope from allowed suffixes. An empty scope allows everything.
func NewScope(suffixes []string) *Scope {
	s := &Scope{
		tree:  domain_suffix_trie.NewDomainSuffixTrie[bool](),
		empty: true,
	}
	for _, suffix := range suffixes {
		suffix = strings.ToLower(strings.Trim(strings.TrimSpace(suffix), "."))
		if suffix == "" {
			continue
		}
		s.empty = false
		s.tree.AddDomainSuffix(suffix, true)
	}
	return s
}

// Allows implements service.ScopeFilter
func (s *Scope) Allows(name string) bool {
	if s.empty {
		return true
	}
	return s.tree.FindMatchDomainSuffixPayload(strings.ToLower(name))
}
