// Package templateio guards the boundary between untrusted template JSON and
// the live document. Incoming payloads are size checked, parsed, migrated,
// validated, materialized and sanitized, in that order; outgoing documents
// are exported into the versioned payload shape.
package templateio

import (
	"fmt"
	"strings"
)

const (
	// DefaultMaxBytes caps the raw size of an import.
	DefaultMaxBytes = 2 << 20
	// DefaultMaxComponents caps the number of canvas components in a payload.
	DefaultMaxComponents = 200
)

// Limits bound the resources an import may consume. Zero fields take the
// defaults.
type Limits struct {
	MaxBytes      int
	MaxComponents int
}

// DefaultLimits returns the stock limits.
func DefaultLimits() Limits {
	return Limits{MaxBytes: DefaultMaxBytes, MaxComponents: DefaultMaxComponents}
}

func (l Limits) withDefaults() Limits {
	if l.MaxBytes <= 0 {
		l.MaxBytes = DefaultMaxBytes
	}
	if l.MaxComponents <= 0 {
		l.MaxComponents = DefaultMaxComponents
	}
	return l
}

// Issue is a single validation finding.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return i.Path + ": " + i.Message
}

// Issues is every finding of one validation pass.
type Issues []Issue

func (is Issues) Error() string {
	switch len(is) {
	case 0:
		return "templateio: no issues"
	case 1:
		return "templateio: " + is[0].String()
	}
	lines := make([]string, 0, len(is))
	for _, i := range is {
		lines = append(lines, i.String())
	}
	return fmt.Sprintf("templateio: %d issues:\n%s", len(is), strings.Join(lines, "\n"))
}

// Result reports the outcome of an import.
type Result struct {
	OK     bool   `json:"ok"`
	Issues Issues `json:"issues,omitempty"`
}

// Err returns the issues as an error, or nil when the import succeeded.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return r.Issues
}

func failed(issues Issues) Result {
	return Result{Issues: issues}
}
