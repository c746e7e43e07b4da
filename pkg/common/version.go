package common

import (
	"fmt"
	"strings"
)

var (
	// PV is the current version object of the program
	PV ProgramVersion
	// Version is set via -ldflags at build time
	Version = "dev"
	// CommitHash is set via -ldflags at build time
	CommitHash = "unknown"
	// BuildTime is set via -ldflags at build time
	BuildTime = "unknown"
)

func init() {
	PV = ProgramVersion{
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
	}
}

// ProgramVersion is the version object of the program
type ProgramVersion struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
}

// Short returns the short version of the program
func (v ProgramVersion) Short() string {
	return fmt.Sprintf("%s-%s", v.Version, v.CommitHash)
}

// String returns the verbose version of the program
func (v ProgramVersion) String() string {
	var b strings.Builder
	b.WriteString("discovery-pinger\n")
	fmt.Fprintf(&b, "Version: %s\n", v.Version)
	fmt.Fprintf(&b, "Commit: %s\n", v.CommitHash)
	fmt.Fprintf(&b, "Build Date: %s", v.BuildTime)
	return b.String()
}
