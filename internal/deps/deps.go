// Package deps probes the external tools and disk capacity the pipeline
// depends on. It only reports; callers decide whether a missing tool is
// fatal.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool describes an external binary the pipeline shells out to.
type Tool struct {
	Name     string
	Command  string
	Purpose  string
	Optional bool
}

// Status is the probe result for one tool. Detail carries the resolved
// path when the tool is available and the failure reason when it is not.
type Status struct {
	Tool      Tool
	Available bool
	Detail    string
}

// Probe resolves a tool's command on PATH or as an absolute path.
func Probe(tool Tool) Status {
	tool.Command = strings.TrimSpace(tool.Command)
	tool.Purpose = strings.TrimSpace(tool.Purpose)
	status := Status{Tool: tool}

	if tool.Command == "" {
		status.Detail = "command not configured"
		return status
	}
	resolved, err := exec.LookPath(tool.Command)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", tool.Command)
		return status
	}
	status.Available = true
	status.Detail = resolved
	return status
}

// CheckTools probes every tool in order.
func CheckTools(tools ...Tool) []Status {
	results := make([]Status, 0, len(tools))
	for _, tool := range tools {
		results = append(results, Probe(tool))
	}
	return results
}
