package lsp

import (
	"errors"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	rlerrors "redline/internal/errors"
	"redline/internal/lexer"
)

// ConvertLexError turns a lexer failure into a single-character diagnostic.
// Lexer positions are 1-based, LSP positions 0-based.
func ConvertLexError(lexErr *lexer.Error) protocol.Diagnostic {
	line := protocol.UInteger(max(0, lexErr.Line-1))
	char := protocol.UInteger(max(0, lexErr.Column-1))

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: char},
			End:   protocol.Position{Line: line, Character: char + 1},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Code:     &protocol.IntegerOrString{Value: rlerrors.CodeFor(lexErr.Kind)},
		Source:   ptrString("redline-lexer"),
		Message:  lexErr.Message,
	}
}

// Diagnose lexes text and returns its diagnostics. A clean document yields an
// empty, non-nil slice so that publishing it clears stale markers.
func Diagnose(text string) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	_, err := lexer.New(text).Scan()
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		diagnostics = append(diagnostics, ConvertLexError(lexErr))
	}

	return diagnostics
}

func publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	diagnostics := Diagnose(text)
	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), uri)

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
