// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"redline/internal/lexer"
)

const PROMPT = ">> "

// Start reads lines from in until EOF and writes each line's tokens to out.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}

		tokens, err := lexer.Tokenize(scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "error: %s\n", err)
			continue
		}

		parts := make([]string, len(tokens))
		for i, tok := range tokens {
			parts[i] = tok.String()
		}
		fmt.Fprintf(out, "[%s]\n", strings.Join(parts, ", "))
	}
}
