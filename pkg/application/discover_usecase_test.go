package application

import (
	"context"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/WangYihang/discovery-pinger/pkg/domain/entity"
	"github.com/WangYihang/discovery-pinger/pkg/infrastructure/suffix"
)

// recordingReporter remembers every target it was asked to report to
type recordingReporter struct {
	names   []string
	outcome entity.Outcome
}

func (r *recordingReporter) Report(ctx context.Context, target string) entity.Outcome {
	r.names = append(r.names, target)
	return r.outcome
}

type countingRecorder struct {
	runs    []error
	levels  int
	reports []entity.Outcome
}

func (c *countingRecorder) RecordRun(err error)                 { c.runs = append(c.runs, err) }
func (c *countingRecorder) RecordLevel()                        { c.levels++ }
func (c *countingRecorder) RecordReport(outcome entity.Outcome) { c.reports = append(c.reports, outcome) }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newUseCase(reporter *recordingReporter, scope []string) *DiscoverUseCase {
	return NewDiscoverUseCase(
		Config{Product: "jenkins"},
		suffix.NewList(false),
		suffix.NewScope(scope),
		reporter,
		nil,
		quietLogger(),
	)
}

func TestDiscover_Targets(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		expected []string
	}{
		{
			"private host under com",
			"test.sfbay.sun.com",
			[]string{
				"discover-jenkins.test.sfbay.sun.com",
				"discover-jenkins.sfbay.sun.com",
				"discover-jenkins.sun.com",
			},
		},
		{
			"host under co.jp",
			"kohsuke.co.jp",
			[]string{"discover-jenkins.kohsuke.co.jp"},
		},
		{
			"underscore label",
			"my_host.corp.example.com",
			[]string{
				"discover-jenkins.my_host.corp.example.com",
				"discover-jenkins.corp.example.com",
				"discover-jenkins.example.com",
			},
		},
		{"whole host is public", "co.jp", nil},
		{"tld", "com", nil},
		{"single unlisted label", "localhost", []string{"discover-jenkins.localhost"}},
		{"ipv4", "192.168.1.10", nil},
		{"bracketed ipv6", "[2001:db8::1]", nil},
		{"bare ipv6", "2001:db8::1", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter := &recordingReporter{}
			uc := newUseCase(reporter, nil)

			if err := uc.Discover(context.Background(), tt.host); err != nil {
				t.Fatalf("Discover(%s) error: %v", tt.host, err)
			}
			if !reflect.DeepEqual(reporter.names, tt.expected) {
				t.Errorf("Discover(%s) reported %v, want %v", tt.host, reporter.names, tt.expected)
			}
		})
	}
}

func TestDiscover_Idempotent(t *testing.T) {
	reporter := &recordingReporter{}
	uc := newUseCase(reporter, nil)

	first, err := uc.Targets("test.sfbay.sun.com")
	if err != nil {
		t.Fatalf("Targets() error: %v", err)
	}
	second, err := uc.Targets("test.sfbay.sun.com")
	if err != nil {
		t.Fatalf("Targets() error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Targets() not idempotent: %v vs %v", first, second)
	}
	if len(reporter.names) != 0 {
		t.Errorf("Targets() must not report, got %v", reporter.names)
	}
}

func TestDiscover_FailuresDoNotStopAscent(t *testing.T) {
	reporter := &recordingReporter{outcome: entity.OutcomeFailed}
	uc := newUseCase(reporter, nil)

	if err := uc.Discover(context.Background(), "test.sfbay.sun.com"); err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(reporter.names) != 3 {
		t.Errorf("expected 3 report attempts, got %d", len(reporter.names))
	}
}

func TestDiscover_ScopeStopsAscent(t *testing.T) {
	reporter := &recordingReporter{}
	uc := newUseCase(reporter, []string{"sfbay.sun.com"})

	if err := uc.Discover(context.Background(), "test.sfbay.sun.com"); err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	expected := []string{
		"discover-jenkins.test.sfbay.sun.com",
		"discover-jenkins.sfbay.sun.com",
	}
	if !reflect.DeepEqual(reporter.names, expected) {
		t.Errorf("reported %v, want %v", reporter.names, expected)
	}
}

func TestDiscover_ParseFailurePropagates(t *testing.T) {
	reporter := &recordingReporter{}
	uc := newUseCase(reporter, nil)

	if err := uc.Discover(context.Background(), "bad..name.com"); err == nil {
		t.Error("Discover() should fail on an unparseable host name")
	}
	if len(reporter.names) != 0 {
		t.Errorf("no reports expected, got %v", reporter.names)
	}
}

func TestDiscover_Cancelled(t *testing.T) {
	reporter := &recordingReporter{}
	uc := newUseCase(reporter, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := uc.Discover(ctx, "test.sfbay.sun.com"); err != context.Canceled {
		t.Errorf("Discover() error = %v, want context.Canceled", err)
	}
	if len(reporter.names) != 0 {
		t.Errorf("no reports expected after cancel, got %v", reporter.names)
	}
}

func TestDiscover_RecordsLevels(t *testing.T) {
	reporter := &recordingReporter{}
	recorder := &countingRecorder{}
	uc := NewDiscoverUseCase(Config{Product: "jenkins"}, suffix.NewList(false), nil, reporter, recorder, quietLogger())

	if err := uc.Discover(context.Background(), "kohsuke.co.jp"); err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if recorder.levels != 1 {
		t.Errorf("levels = %d, want 1", recorder.levels)
	}
}

func TestTargets_DoesNotRecordLevels(t *testing.T) {
	reporter := &recordingReporter{}
	recorder := &countingRecorder{}
	uc := NewDiscoverUseCase(Config{Product: "jenkins"}, suffix.NewList(false), nil, reporter, recorder, quietLogger())

	targets, err := uc.Targets("test.sfbay.sun.com")
	if err != nil {
		t.Fatalf("Targets() error: %v", err)
	}
	if len(targets) != 3 {
		t.Errorf("len(Targets()) = %d, want 3", len(targets))
	}
	if recorder.levels != 0 {
		t.Errorf("levels = %d, want 0 for a dry run", recorder.levels)
	}
}

func TestRun_BaseURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		expected []string
		wantErr  bool
	}{
		{"domain", "http://kohsuke.co.jp:8080/jenkins/", []string{"discover-jenkins.kohsuke.co.jp"}, false},
		{"ipv6", "http://[::1]:8080/", nil, false},
		{"ipv4", "http://127.0.0.1:8080/", nil, false},
		{"no host", "jenkins", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter := &recordingReporter{}
			uc := newUseCase(reporter, nil)

			err := uc.Run(context.Background(), tt.baseURL)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run(%s) error = %v, wantErr %v", tt.baseURL, err, tt.wantErr)
			}
			if !reflect.DeepEqual(reporter.names, tt.expected) {
				t.Errorf("Run(%s) reported %v, want %v", tt.baseURL, reporter.names, tt.expected)
			}
		})
	}
}
