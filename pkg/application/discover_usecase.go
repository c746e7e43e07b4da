package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/WangYihang/discovery-pinger/pkg/domain"
	"github.com/WangYihang/discovery-pinger/pkg/domain/entity"
	"github.com/WangYihang/discovery-pinger/pkg/domain/repository"
	"github.com/WangYihang/discovery-pinger/pkg/domain/service"
)

// DiscoverUseCase walks up the domain tree of a host and reports to every
// discovery endpoint below the first public suffix
type DiscoverUseCase struct {
	config Config

	// Services
	classifier service.SuffixClassifier
	scope      service.ScopeFilter
	reporter   service.Reporter

	// Repositories
	recorder repository.RunRecorder

	addresses *domain.Classifier
	logger    *slog.Logger
}

// Config holds the use case configuration
type Config struct {
	// Product names the discovery label, "discover-<product>"
	Product string
}

// NewDiscoverUseCase creates a new discover use case. scope and recorder may be nil.
func NewDiscoverUseCase(
	config Config,
	classifier service.SuffixClassifier,
	scope service.ScopeFilter,
	reporter service.Reporter,
	recorder repository.RunRecorder,
	logger *slog.Logger,
) *DiscoverUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &DiscoverUseCase{
		config:     config,
		classifier: classifier,
		scope:      scope,
		reporter:   reporter,
		recorder:   recorder,
		addresses:  domain.NewClassifier(),
		logger:     logger,
	}
}

// Run reports the host of baseURL
func (uc *DiscoverUseCase) Run(ctx context.Context, baseURL string) error {
	host, err := domain.HostFromURL(baseURL)
	if err != nil {
		return err
	}
	return uc.Discover(ctx, host)
}

// Discover reports to every discovery target of hostName, in ascent order
func (uc *DiscoverUseCase) Discover(ctx context.Context, hostName string) error {
	return uc.walk(ctx, hostName, func(ctx context.Context, target string) {
		if uc.recorder != nil {
			uc.recorder.RecordLevel()
		}
		outcome := uc.reporter.Report(ctx, target)
		uc.logger.Debug("report finished", "target", target, "outcome", outcome)
	})
}

// Targets returns the discovery targets of hostName without reporting
func (uc *DiscoverUseCase) Targets(hostName string) ([]string, error) {
	var targets []string
	err := uc.walk(context.Background(), hostName, func(_ context.Context, target string) {
		targets = append(targets, target)
	})
	return targets, err
}

func (uc *DiscoverUseCase) walk(ctx context.Context, hostName string, visit func(context.Context, string)) error {
	if uc.addresses.IsIPv6Literal(hostName) {
		uc.logger.Debug("literal IPv6 address", "host", hostName)
		return nil
	}
	if uc.addresses.IsIPv4Literal(hostName) {
		uc.logger.Debug("literal IPv4 address", "host", hostName)
		return nil
	}

	n, err := entity.ParseName(hostName)
	if err != nil {
		return fmt.Errorf("failed to parse host name: %w", err)
	}

	if registrable, err := uc.classifier.Registrable(n.String()); err == nil {
		uc.logger.Debug("walking domain", "host", n.String(), "registrable", registrable)
	}

	label := entity.DiscoveryLabel(uc.config.Product)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		uc.logger.Debug("considering", "domain", n.String())

		if uc.classifier.IsPublicSuffix(n.String()) {
			uc.logger.Debug("public suffix reached, done", "domain", n.String())
			return nil
		}
		if uc.scope != nil && !uc.scope.Allows(n.String()) {
			uc.logger.Debug("outside configured scope, done", "domain", n.String())
			return nil
		}

		visit(ctx, n.Child(label).String())

		if !n.HasParent() {
			uc.logger.Debug("no more parents, done", "domain", n.String())
			return nil
		}
		n = n.Parent()
	}
}
