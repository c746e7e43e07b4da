package repository

import "github.com/WangYihang/discovery-pinger/pkg/domain/entity"

// RunRecorder records what a single discovery run did
type RunRecorder interface {
	// RecordRun records the end of a run
	RecordRun(err error)
	// RecordLevel records a visited domain level
	RecordLevel()
	// RecordReport records a report outcome
	RecordReport(outcome entity.Outcome)
}
