// Package buildinfo carries the version stamped into a photogrid binary.
//
// The variables are set with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/photogrid/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/photogrid/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/photogrid/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Info is the build stamp as reported by the serve health endpoint.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Built   string `json:"built"`
}

// Current returns the stamp of the running binary. Commit is shortened to
// seven characters.
func Current() Info {
	commit := Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return Info{Version: Version, Commit: commit, Built: Date}
}

// Template returns the version template string for cobra.
func Template() string {
	info := Current()
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", info.Version, info.Commit, info.Built)
}
