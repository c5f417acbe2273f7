package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/pantrymcp/pantry-mcp/internal/core"
	"github.com/pantrymcp/pantry-mcp/internal/errors"
	"github.com/pantrymcp/pantry-mcp/internal/pantry"
)

// resolveTarget resolves the basket for a subcommand. The optional positional
// argument at argIndex plays the role of the per-call basket name.
func resolveTarget(args []string, argIndex int) (core.Target, error) {
	var basketName string
	if argIndex < len(args) {
		basketName = args[argIndex]
	}
	return core.Resolve(cfg, "", basketName)
}

// newClient builds a Pantry client from the loaded configuration.
func newClient() *pantry.Client {
	return pantry.New(cfg.BaseURL,
		pantry.WithTimeout(cfg.Timeout),
		pantry.WithLogger(logger),
		pantry.WithUserAgent("pantry-mcp/"+Version),
	)
}

// readValue returns the basket contents given by --value, or read from stdin
// when it is piped.
func readValue(cmd *cobra.Command, inline string) (pantry.Contents, error) {
	if inline != "" {
		return parseValue(strings.NewReader(inline))
	}
	if !isTerminal(os.Stdin) {
		return parseValue(cmd.InOrStdin())
	}
	return nil, errors.InvalidParams("no value provided; use --value or pipe a JSON object to stdin")
}

// parseValue decodes a single JSON object, keeping numbers exact.
func parseValue(r io.Reader) (pantry.Contents, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read value: %w", err)
	}

	var value pantry.Contents
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&value); err != nil {
		return nil, errors.InvalidParams(fmt.Sprintf("value must be a JSON object: %v", err))
	}
	if value == nil {
		return nil, errors.InvalidParams("value must be a JSON object, got null")
	}
	if dec.More() {
		return nil, errors.InvalidParams("value must be a single JSON object")
	}
	return value, nil
}

// outputJSON marshals and prints JSON to stdout.
func outputJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// outputPayload prints a Pantry payload, indented unless --json is set.
func outputPayload(raw json.RawMessage) error {
	if flagJSON {
		fmt.Println(string(raw))
		return nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	fmt.Println(buf.String())
	return nil
}

// isTerminal checks if the given file descriptor is a TTY.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// getExitCode maps error codes to CLI exit codes.
func getExitCode(err error) int {
	if err == nil {
		return 0
	}

	code := errors.Code(err)
	switch code {
	case errors.CodeConfigMissing, errors.CodeInvalidParams:
		return 2 // Configuration / usage
	case errors.CodeBasketNotFound:
		return 4 // Basket not found
	case errors.CodeRemoteError, errors.CodeInvalidResponse:
		return 3 // Pantry failure
	default:
		return 1 // General error, including startup failures
	}
}

// printError prints an error to stderr with appropriate formatting.
func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// confirmPrompt prompts the user for a yes/no confirmation.
// Returns true if user confirms, false otherwise.
func confirmPrompt(message string) bool {
	if !isTerminal(os.Stdin) {
		return false
	}

	fmt.Fprintf(os.Stderr, "%s (y/N): ", message)

	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
