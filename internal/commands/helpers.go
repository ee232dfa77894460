// Package commands implements the CLI commands.
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adminlayers/gcadm/internal/api"
	"github.com/adminlayers/gcadm/internal/appctx"
	"github.com/adminlayers/gcadm/internal/output"
)

// app pulls the application context out of the cobra context.
func app(cmd *cobra.Command) (*appctx.App, error) {
	a := appctx.FromContext(cmd.Context())
	if a == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return a, nil
}

// backendApp is app plus the requirement that a backend is configured.
func backendApp(cmd *cobra.Command) (*appctx.App, error) {
	a, err := app(cmd)
	if err != nil {
		return nil, err
	}
	if a.Backend == nil {
		return nil, output.ErrAuth("no credentials configured")
	}
	return a, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResult unwraps a CallResult: success prints the payload, failure
// becomes a structured error carrying the HTTP status.
func printResult(res api.CallResult) error {
	if !res.Success {
		return resultError(res)
	}
	if len(res.Data) == 0 {
		return printJSON(map[string]any{"status": "ok"})
	}
	var v any
	if err := json.Unmarshal(res.Data, &v); err != nil {
		fmt.Println(string(res.Data))
		return nil
	}
	return printJSON(v)
}

// printRawList prints a slice of raw entities as one JSON array.
func printRawList(entities []json.RawMessage) error {
	items := make([]any, 0, len(entities))
	for _, raw := range entities {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		items = append(items, v)
	}
	return printJSON(items)
}

// resultError maps a failed CallResult to the error taxonomy.
func resultError(res api.CallResult) error {
	switch res.StatusCode {
	case 401, 403:
		return output.ErrAuth(res.Err)
	case 404:
		return &output.Error{Code: output.CodeNotFound, Message: res.Err, HTTPStatus: res.StatusCode}
	case 0:
		return &output.Error{Code: output.CodeNetwork, Message: res.Err}
	default:
		return output.ErrAPI(res.StatusCode, res.Err)
	}
}

// parseSetFlags turns repeated key=value flags into an update map.
func parseSetFlags(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, output.ErrUsage("no fields to update, use --set key=value")
	}
	fields := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		k, v, found := strings.Cut(pair, "=")
		if !found || k == "" {
			return nil, output.ErrUsage(fmt.Sprintf("invalid field %q, expected key=value", pair))
		}
		fields[k] = v
	}
	return fields, nil
}
