package diagnostics

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hstools/interod/src/interod/entity"
)

// _locationPattern is the single ordered alternation over the three location
// syntaxes the compiler emits: line:col, line:col-col and
// (line,col)-(line,col). First alternative to match wins.
var _locationPattern = regexp.MustCompile(
	`^([^ \t][^:\n]*):(?:(\d+):(\d+)(?:-(\d+))?|\((\d+),(\d+)\)-\((\d+),(\d+)\)):[ \t]*(.*)$`,
)

// Messages carrying these markers were demoted to warnings by deferral flags
// and are promoted back to errors here.
var _promotedMarkers = []string{
	"[-Wdeferred-type-errors]",
	"[-Wdeferred-out-of-scope-variables]",
	"[-Wtyped-holes]",
}

const _spliceMarker = "Splicing "

// RemapFunc rewrites a scratch/staging file path to the logical source path
// it shadows. Returning ok=false leaves the path untouched.
type RemapFunc func(path string) (string, bool)

// Parse converts raw compiler output into structured diagnostics.
//
// Blocks are recognized by a "path:location: message" header followed by
// indented continuation lines. Classification follows the compiler's deferral
// behavior: blocks default to warning, promoted markers reclassify to error,
// and a splice announcement classifies as splice. If any promotion occurred
// in a batch, every plain warning from that batch is discarded — this mirrors
// the compiler's own behavior under deferral flags and is preserved
// deliberately rather than generalized (see DESIGN.md). Duplicates collapse;
// remap rewrites staging paths back to their logical sources.
func Parse(rawText string, remap RemapFunc) []entity.Diagnostic {
	var diagnostics []entity.Diagnostic
	promoted := false

	lines := strings.Split(rawText, "\n")
	for i := 0; i < len(lines); {
		header := _locationPattern.FindStringSubmatch(lines[i])
		if header == nil {
			i++
			continue
		}

		messageParts := []string{header[9]}
		i++
		for i < len(lines) && isContinuation(lines[i]) {
			messageParts = append(messageParts, strings.TrimRight(lines[i], " \t"))
			i++
		}

		d, wasPromoted := buildDiagnostic(header, messageParts, remap)
		promoted = promoted || wasPromoted
		diagnostics = append(diagnostics, d)
	}

	if promoted {
		diagnostics = dropPlainWarnings(diagnostics)
	}
	return collapseDuplicates(diagnostics)
}

func isContinuation(line string) bool {
	if line == "" {
		return false
	}
	return line[0] == ' ' || line[0] == '\t'
}

func buildDiagnostic(header []string, messageParts []string, remap RemapFunc) (entity.Diagnostic, bool) {
	d := entity.Diagnostic{File: header[1]}
	if header[2] != "" {
		// line:col, optionally with an end column on the same line.
		d.Line = atoi(header[2])
		d.Column = atoi(header[3])
		if header[4] != "" {
			d.EndLine = d.Line
			d.EndColumn = atoi(header[4])
		}
	} else {
		// (line,col)-(line,col)
		d.Line = atoi(header[5])
		d.Column = atoi(header[6])
		d.EndLine = atoi(header[7])
		d.EndColumn = atoi(header[8])
	}

	if remap != nil {
		if logical, ok := remap(d.File); ok {
			d.File = logical
		}
	}

	message, severity, promoted := classify(messageParts)
	d.Message = message
	d.Severity = severity
	d.Suggestions = ScanSuggestions(d.Message, d.Line, d.Column)
	return d, promoted
}

// classify strips the compiler's severity word and applies the promotion and
// splice rules. Anything that is not a warning or a splice is an error.
func classify(parts []string) (string, entity.Severity, bool) {
	message := strings.TrimSpace(strings.Join(parts, "\n"))

	severity := entity.SeverityError
	for _, prefix := range []string{"warning:", "Warning:"} {
		if strings.HasPrefix(message, prefix) {
			message = strings.TrimSpace(strings.TrimPrefix(message, prefix))
			severity = entity.SeverityWarning
			break
		}
	}
	for _, prefix := range []string{"error:", "Error:"} {
		if strings.HasPrefix(message, prefix) {
			message = strings.TrimSpace(strings.TrimPrefix(message, prefix))
			break
		}
	}

	if strings.HasPrefix(message, _spliceMarker) {
		return message, entity.SeveritySplice, false
	}
	if severity == entity.SeverityWarning {
		for _, marker := range _promotedMarkers {
			if strings.HasPrefix(message, marker) {
				return message, entity.SeverityError, true
			}
		}
	}
	return message, severity, false
}

// dropPlainWarnings removes every non-promoted warning from a batch that
// contained at least one promotion.
func dropPlainWarnings(diagnostics []entity.Diagnostic) []entity.Diagnostic {
	kept := diagnostics[:0]
	for _, d := range diagnostics {
		if d.Severity != entity.SeverityWarning {
			kept = append(kept, d)
		}
	}
	return kept
}

func collapseDuplicates(diagnostics []entity.Diagnostic) []entity.Diagnostic {
	var unique []entity.Diagnostic
	for _, d := range diagnostics {
		duplicate := false
		for _, u := range unique {
			if d.SameAs(u) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, d)
		}
	}
	return unique
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
