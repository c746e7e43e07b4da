package dns

import (
	"context"
	"fmt"
	"time"

	"github.com/miekg/dns"
)

// Resolver implements service.NameChecker
type Resolver struct {
	servers []string
	timeout time.Duration
	client  *dns.Client
}

// Config holds DNS resolver configuration
type Config struct {
	Servers []string
	Timeout time.Duration
}

// NewResolver creates a new DNS resolver. It returns nil when no servers are configured.
func NewResolver(config Config) *Resolver {
	if len(config.Servers) == 0 {
		return nil
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}

	return &Resolver{
		servers: config.Servers,
		timeout: config.Timeout,
		client: &dns.Client{
			Timeout: config.Timeout,
		},
	}
}

// Exists implements service.NameChecker
func (r *Resolver) Exists(ctx context.Context, name string) (bool, error) {
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		resp, err := r.query(ctx, name, qtype)
		if err != nil {
			return false, err
		}
		if resp.Rcode == dns.RcodeNameError {
			return false, nil
		}
		if resp.Rcode != dns.RcodeSuccess {
			return false, fmt.Errorf("%s lookup for %s: %s", dns.TypeToString[qtype], name, dns.RcodeToString[resp.Rcode])
		}
		if len(resp.Answer) > 0 {
			return true, nil
		}
	}
	// NOERROR with no address records
	return false, nil
}

func (r *Resolver) query(ctx context.Context, name string, qtype uint16) (*dns.Msg, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), qtype)
	msg.RecursionDesired = true

	var lastErr error

	// Try each DNS server
	for _, server := range r.servers {
		qctx, cancel := context.WithTimeout(ctx, r.timeout)
		resp, _, err := r.client.ExchangeContext(qctx, msg, server)
		cancel()

		if err == nil && resp != nil {
			return resp, nil
		}
		lastErr = err
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no response from any DNS server")
	}
	return nil, lastErr
}
