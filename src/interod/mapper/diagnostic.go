package mapper

import (
	"github.com/hstools/interod/src/interod/entity"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

const _diagnosticSource = "interod"

// DiagnosticToProtocol maps one parsed compiler diagnostic to its LSP
// equivalent. Compiler positions are 1-based; LSP positions are 0-based. A
// missing end position collapses the range onto the start.
func DiagnosticToProtocol(d entity.Diagnostic) protocol.Diagnostic {
	start := protocol.Position{
		Line:      zeroBased(d.Line),
		Character: zeroBased(d.Column),
	}
	end := protocol.Position{
		Line:      zeroBased(d.EndLine),
		Character: zeroBased(d.EndColumn),
	}
	if d.EndLine == 0 {
		end = start
	}

	return protocol.Diagnostic{
		Range:    protocol.Range{Start: start, End: end},
		Severity: severityToProtocol(d.Severity),
		Source:   _diagnosticSource,
		Message:  d.Message,
	}
}

// DiagnosticsToPublishParams groups diagnostics by file into
// PublishDiagnosticsParams, one per distinct file.
func DiagnosticsToPublishParams(diagnostics []entity.Diagnostic) []*protocol.PublishDiagnosticsParams {
	byFile := make(map[string][]protocol.Diagnostic)
	order := make([]string, 0)
	for _, d := range diagnostics {
		if _, ok := byFile[d.File]; !ok {
			order = append(order, d.File)
		}
		byFile[d.File] = append(byFile[d.File], DiagnosticToProtocol(d))
	}

	params := make([]*protocol.PublishDiagnosticsParams, 0, len(order))
	for _, file := range order {
		params = append(params, &protocol.PublishDiagnosticsParams{
			URI:         uri.File(file),
			Diagnostics: byFile[file],
		})
	}
	return params
}

func severityToProtocol(s entity.Severity) protocol.DiagnosticSeverity {
	switch s {
	case entity.SeverityError:
		return protocol.DiagnosticSeverityError
	case entity.SeveritySplice:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityWarning
	}
}

func zeroBased(n int) uint32 {
	if n <= 0 {
		return 0
	}
	return uint32(n - 1)
}
