package main

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	herrors "github.com/pipe01/hyper/errors"
	"github.com/pipe01/hyper/internal/lexer"
	"github.com/pipe01/hyper/internal/workspace"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "hyper"

var version string = "0.0.1"
var handler protocol.Handler

var log = commonlog.GetLogger("hyper.lsp")

type documentStore struct {
	mu   sync.Mutex
	docs map[string]string
}

func (s *documentStore) get(uri string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[uri]
	return doc, ok
}

func (s *documentStore) set(uri, contents string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[uri] = contents
}

func (s *documentStore) remove(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.docs, uri)
}

var documents = &documentStore{docs: map[string]string{}}

func main() {
	// This increases logging verbosity (optional)
	commonlog.Configure(1, nil)

	protocol.SetTraceValue(protocol.TraceValueMessage)

	handler = protocol.Handler{
		Initialize:  initialize,
		Initialized: initialized,
		Shutdown:    shutdown,
		SetTrace:    setTrace,
		TextDocumentDidOpen: func(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
			documents.set(params.TextDocument.URI, params.TextDocument.Text)

			return handleDocument(context, params.TextDocument.URI)
		},
		TextDocumentDidChange: func(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
			content, ok := documents.get(params.TextDocument.URI)
			if !ok {
				return nil
			}

			for _, change := range params.ContentChanges {
				switch change := change.(type) {
				case protocol.TextDocumentContentChangeEventWhole:
					content = change.Text

				case protocol.TextDocumentContentChangeEvent:
					startIndex, endIndex := change.Range.IndexesIn(content)
					content = content[:startIndex] + change.Text + content[endIndex:]
				}
			}

			documents.set(params.TextDocument.URI, content)

			return handleDocument(context, params.TextDocument.URI)
		},
		TextDocumentDidClose: func(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
			documents.remove(params.TextDocument.URI)

			// Clear diagnostics left behind by the closed document
			context.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
				URI:         params.TextDocument.URI,
				Diagnostics: []protocol.Diagnostic{},
			})
			return nil
		},
		TextDocumentSemanticTokensFull: semanticTokensFull,
	}

	server := server.NewServer(&handler, lsName, false)

	server.RunStdio()
}

// documentMode guesses how a document should be parsed. Modules always start
// with a definition.
func documentMode(contents string) workspace.Mode {
	if strings.HasPrefix(strings.TrimSpace(contents), "def") {
		return workspace.ModeModule
	}

	return workspace.ModeElement
}

func loadDocument(docURI string) (*workspace.File, error) {
	url, err := url.Parse(docURI)
	if err != nil {
		return nil, fmt.Errorf("parse document uri: %w", err)
	}
	if url.Scheme != "file" {
		return nil, fmt.Errorf("invalid document uri scheme %q", url.Scheme)
	}

	contents, ok := documents.get(docURI)
	if !ok {
		return nil, fmt.Errorf("document %q not found", docURI)
	}

	ws := workspace.New(filepath.Dir(url.Path), workspace.Options{
		Mode: documentMode(contents),
	})

	return ws.LoadWithContents(filepath.Base(url.Path), []byte(contents))
}

func diagnose(err error) protocol.Diagnostic {
	if serr, ok := herrors.Situate(err); ok {
		start := pos(serr.At())
		end := start
		end.Character++

		return protocol.Diagnostic{
			Range: protocol.Range{
				Start: start,
				End:   end,
			},
			Severity: ptr(protocol.DiagnosticSeverityError),
			Source:   ptr(lsName),
			Message:  serr.Unwrap().Error(),
		}
	}

	return protocol.Diagnostic{
		Severity: ptr(protocol.DiagnosticSeverityError),
		Source:   ptr(lsName),
		Message:  err.Error(),
	}
}

func handleDocument(context *glsp.Context, docURI string) error {
	if _, ok := documents.get(docURI); !ok {
		return nil
	}

	diag := []protocol.Diagnostic{}

	_, err := loadDocument(docURI)
	if err != nil {
		log.Debugf("%s: %s", docURI, err)
		diag = append(diag, diagnose(err))
	}

	context.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         docURI,
		Diagnostics: diag,
	})

	return nil
}

func initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := handler.CreateServerCapabilities()
	capabilities.SemanticTokensProvider = &protocol.SemanticTokensOptions{
		Legend: protocol.SemanticTokensLegend{
			TokenTypes:     tokenLegend,
			TokenModifiers: []string{},
		},
		Range: false,
		Full:  true,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func shutdown(context *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func semanticTokensFull(context *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	f, err := loadDocument(params.TextDocument.URI)
	if err != nil {
		// Diagnostics already report the error, there's nothing to highlight
		return &protocol.SemanticTokens{Data: []protocol.UInteger{}}, nil
	}

	return &protocol.SemanticTokens{
		Data: encodeTokens(collectTokens(f.Root)),
	}, nil
}

func ptr[T any](v T) *T {
	return &v
}

// pos converts a 1-based location into a 0-based protocol position.
func pos(l lexer.Location) protocol.Position {
	return protocol.Position{
		Line:      uint32(l.Line - 1),
		Character: uint32(l.Column - 1),
	}
}
