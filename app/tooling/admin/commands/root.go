// Package commands contains the admin commands for talking to a node.
package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ardanlabs/chainsync/business/web/errs"
	"github.com/spf13/cobra"
)

var url string

func init() {
	rootCmd.PersistentFlags().StringVarP(&url, "url", "u", "http://localhost:3001", "Url of the node's public api.")
}

var rootCmd = &cobra.Command{
	Use:           "admin",
	Short:         "Inspect and drive a blockchain node",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Run executes the command named in args, writing the results to out.
func Run(args []string, out io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)

	return rootCmd.Execute()
}

// =============================================================================

var client = http.Client{
	Timeout: 10 * time.Second,
}

// call sends a request to the node and decodes the JSON response into
// resp. A non-200 status is turned into an error carrying the node's message.
func call(method string, path string, req any, resp any) error {
	var body io.Reader
	if req != nil {
		data, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	endpoint := strings.TrimSuffix(url, "/") + path

	r, err := http.NewRequest(method, endpoint, body)
	if err != nil {
		return err
	}
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	res, err := client.Do(r)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var er errs.Response
		if err := json.NewDecoder(res.Body).Decode(&er); err != nil || er.Error == "" {
			return fmt.Errorf("%s %s: status %d", method, path, res.StatusCode)
		}
		if len(er.Fields) > 0 {
			return fmt.Errorf("%s: %v", er.Error, er.Fields)
		}
		return fmt.Errorf("%s", er.Error)
	}

	if err := json.NewDecoder(res.Body).Decode(resp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
