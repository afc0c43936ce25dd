// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"redline/internal/lsp"
)

const lsName = "redline" // Name identifier for the language server

var (
	version = "0.9.0"        // Server version
	handler protocol.Handler // Protocol handler instance (wired up below)
)

func main() {
	// Configure debug logging (1 = debug level, nil = default logger)
	commonlog.Configure(1, nil)
	log := commonlog.GetLogger("redline.lsp.main")

	redlineHandler := lsp.NewRedlineHandler(lsName, version)

	handler = protocol.Handler{
		Initialize:                     redlineHandler.Initialize,
		Initialized:                    redlineHandler.Initialized,
		Shutdown:                       redlineHandler.Shutdown,
		SetTrace:                       redlineHandler.SetTrace,
		TextDocumentDidOpen:            redlineHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           redlineHandler.TextDocumentDidClose,
		TextDocumentDidChange:          redlineHandler.TextDocumentDidChange,
		TextDocumentCompletion:         redlineHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: redlineHandler.TextDocumentSemanticTokensFull,
	}

	// debug=false keeps glsp's own wire logging off
	s := server.NewServer(&handler, lsName, false)

	log.Info("starting Redline LSP server")

	if err := s.RunStdio(); err != nil {
		log.Errorf("error running Redline LSP server: %s", err)
		os.Exit(1)
	}
}
