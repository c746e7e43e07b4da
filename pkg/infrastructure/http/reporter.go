package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/WangYihang/discovery-pinger/pkg/domain/entity"
	"github.com/WangYihang/discovery-pinger/pkg/domain/service"
)

// Reporter implements service.Reporter with a single plaintext POST
type Reporter struct {
	client          *http.Client
	referrer        string
	userAgent       string
	maxResponseSize int64
	checker         service.NameChecker
	logger          *slog.Logger
}

// Config holds reporter configuration
type Config struct {
	// Referrer is the instance's own base URL, sent as the Referer header
	Referrer        string
	Timeout         time.Duration
	MaxResponseSize int64
	UserAgent       string
	// Transport sends the requests, a clone of http.DefaultTransport when nil
	Transport http.RoundTripper
}

// NewReporter creates a new reporter. checker may be nil.
func NewReporter(config Config, checker service.NameChecker, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	if config.MaxResponseSize <= 0 {
		config.MaxResponseSize = 64 * 1024
	}

	transport := config.Transport
	if transport == nil {
		transport = http.DefaultTransport.(*http.Transport).Clone()
	}

	return &Reporter{
		client: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
			// One request per target: never follow a redirect with a second request
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		referrer:        config.Referrer,
		userAgent:       config.UserAgent,
		maxResponseSize: config.MaxResponseSize,
		checker:         checker,
		logger:          logger,
	}
}

// Report implements service.Reporter
func (r *Reporter) Report(ctx context.Context, target string) entity.Outcome {
	url := "http://" + target + "/"

	if r.checker != nil {
		exists, err := r.checker.Exists(ctx, target)
		switch {
		case err != nil:
			r.logger.Debug("name pre-check failed, trying anyway", "target", target, "error", err)
		case !exists:
			r.logger.Debug("no such host name", "target", target)
			return entity.OutcomeNoSuchHost
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, http.NoBody)
	if err != nil {
		r.logger.Debug("failed to report our location", "url", url, "error", err)
		return entity.OutcomeFailed
	}
	if r.referrer != "" {
		req.Header.Set("Referer", r.referrer)
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			r.logger.Debug("no such host name", "target", target)
			return entity.OutcomeNoSuchHost
		}
		r.logger.Debug("failed to report our location", "url", url, "error", err)
		return entity.OutcomeFailed
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, r.maxResponseSize))
	if err != nil {
		r.logger.Debug("failed to report our location", "url", url, "status", resp.StatusCode, "error", err)
		return entity.OutcomeFailed
	}

	r.logger.Debug("posted location", "url", url, "status", resp.StatusCode, "body", string(body))
	return entity.OutcomeDelivered
}
