package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"redline/internal/lexer"
	"redline/token"
)

var log = commonlog.GetLogger("redline.lsp")

// RedlineHandler implements the LSP server handlers for Redline. Open
// documents are kept in memory and re-lexed on every change.
type RedlineHandler struct {
	name    string
	version string

	mu      sync.RWMutex
	content map[protocol.DocumentUri]string
}

func NewRedlineHandler(name, version string) *RedlineHandler {
	return &RedlineHandler{
		name:    name,
		version: version,
		content: make(map[protocol.DocumentUri]string),
	}
}

// Initialize advertises full-document sync, keyword completion and semantic
// tokens.
func (h *RedlineHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    h.name,
			Version: &h.version,
		},
	}, nil
}

func (h *RedlineHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (h *RedlineHandler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (h *RedlineHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (h *RedlineHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debugf("opened %s", uri)

	h.mu.Lock()
	h.content[uri] = params.TextDocument.Text
	h.mu.Unlock()

	publishDiagnostics(ctx, uri, params.TextDocument.Text)
	return nil
}

func (h *RedlineHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debugf("changed %s", uri)

	h.mu.Lock()
	text := h.content[uri]
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			text = applyChange(text, c)
		}
	}
	h.content[uri] = text
	h.mu.Unlock()

	publishDiagnostics(ctx, uri, text)
	return nil
}

func (h *RedlineHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Debugf("closed %s", params.TextDocument.URI)

	h.mu.Lock()
	delete(h.content, params.TextDocument.URI)
	h.mu.Unlock()

	return nil
}

// TextDocumentCompletion offers every keyword and type name.
func (h *RedlineHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	keywordKind := protocol.CompletionItemKindKeyword
	typeKind := protocol.CompletionItemKindClass

	var items []protocol.CompletionItem
	for _, word := range token.Keywords() {
		kind := &keywordKind
		if token.LookupIdent(word).Kind == token.TYPE {
			kind = &typeKind
		}
		items = append(items, protocol.CompletionItem{Label: word, Kind: kind})
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// TextDocumentSemanticTokensFull encodes the document's tokens in the LSP
// relative format. A document that fails to lex has no semantic tokens.
func (h *RedlineHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	text, err := h.document(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	items, err := lexer.New(text).Scan()
	if err != nil {
		log.Debugf("no semantic tokens for %s: %s", params.TextDocument.URI, err)
		return &protocol.SemanticTokens{Data: []protocol.UInteger{}}, nil
	}

	return &protocol.SemanticTokens{Data: encodeSemanticTokens(collectSemanticTokens(items))}, nil
}

// document returns the open buffer for uri, falling back to the file on disk.
func (h *RedlineHandler) document(uri protocol.DocumentUri) (string, error) {
	h.mu.RLock()
	text, ok := h.content[uri]
	h.mu.RUnlock()
	if ok {
		return text, nil
	}

	path, err := uriToPath(uri)
	if err != nil {
		return "", fmt.Errorf("failed to convert URI %s: %w", uri, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(content), nil
}

// applyChange splices a ranged edit into text. Positions are treated as rune
// columns.
func applyChange(text string, change protocol.TextDocumentContentChangeEvent) string {
	if change.Range == nil {
		return change.Text
	}

	runes := []rune(text)
	start := runeIndex(runes, change.Range.Start)
	end := runeIndex(runes, change.Range.End)
	if end < start {
		start, end = end, start
	}

	return string(runes[:start]) + change.Text + string(runes[end:])
}

func runeIndex(runes []rune, pos protocol.Position) int {
	line := protocol.UInteger(0)
	i := 0
	for i < len(runes) && line < pos.Line {
		if runes[i] == '\n' {
			line++
		}
		i++
	}
	for col := protocol.UInteger(0); i < len(runes) && col < pos.Character && runes[i] != '\n'; col++ {
		i++
	}
	return i
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) → C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
