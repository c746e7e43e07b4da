package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/WangYihang/discovery-pinger/pkg/application"
	"github.com/WangYihang/discovery-pinger/pkg/config"
	"github.com/WangYihang/discovery-pinger/pkg/domain/service"
	"github.com/WangYihang/discovery-pinger/pkg/infrastructure/dns"
	"github.com/WangYihang/discovery-pinger/pkg/infrastructure/http"
	"github.com/WangYihang/discovery-pinger/pkg/infrastructure/metrics"
	"github.com/WangYihang/discovery-pinger/pkg/infrastructure/suffix"
)

// Assembler assembles all components for the application
type Assembler struct {
	config *config.Config
	logger *slog.Logger
}

// NewAssembler creates a new assembler
func NewAssembler(config *config.Config, logger *slog.Logger) *Assembler {
	return &Assembler{config: config, logger: logger}
}

// Assembly is the wired application
type Assembly struct {
	UseCase   *application.DiscoverUseCase
	Scheduler *application.Scheduler
	Metrics   *metrics.Metrics
}

// Assemble wires the use case, scheduler and metrics
func (a *Assembler) Assemble(ctx context.Context) (*Assembly, error) {
	// Load public suffix list
	classifier, err := suffix.Load(ctx, suffix.Config{
		File:          a.config.Suffix.File,
		URL:           a.config.Suffix.URL,
		Timeout:       a.config.HTTP.Timeout,
		IgnorePrivate: a.config.Suffix.IgnorePrivate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load public suffix list: %w", err)
	}

	scope := suffix.NewScope(a.config.Discovery.Scope)
	m := metrics.New()

	// Optional DNS pre-check
	var checker service.NameChecker
	if resolver := dns.NewResolver(dns.Config{
		Servers: a.config.DNS.Servers,
		Timeout: a.config.DNS.Timeout,
	}); resolver != nil {
		checker = resolver
	}

	reporter := http.NewReporter(http.Config{
		Referrer:        a.config.Discovery.BaseURL,
		Timeout:         a.config.HTTP.Timeout,
		MaxResponseSize: a.config.HTTP.MaxResponseSize,
		UserAgent:       a.config.HTTP.UserAgent,
	}, checker, a.logger.With("component", "reporter"))

	useCase := application.NewDiscoverUseCase(
		application.Config{Product: a.config.Discovery.Product},
		classifier,
		scope,
		m.InstrumentReporter(reporter),
		m,
		a.logger.With("component", "walker"),
	)

	scheduler := application.NewScheduler(application.ScheduleConfig{
		Interval:     a.config.Schedule.Interval,
		InitialDelay: a.config.Schedule.InitialDelay,
		Once:         a.config.Schedule.Once,
	}, m, a.logger.With("component", "scheduler"))

	return &Assembly{UseCase: useCase, Scheduler: scheduler, Metrics: m}, nil
}
