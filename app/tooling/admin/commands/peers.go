package commands

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var peersCmd = &cobra.Command{
	Use:   "peers",
	Short: "Print the peers the node is connected to.",
	Args:  cobra.NoArgs,
	RunE:  peersRun,
}

var addPeerCmd = &cobra.Command{
	Use:   "addpeer <ws-url>",
	Short: "Connect the node to another node's p2p address.",
	Args:  cobra.ExactArgs(1),
	RunE:  addPeerRun,
}

func init() {
	rootCmd.AddCommand(peersCmd)
	rootCmd.AddCommand(addPeerCmd)
}

func peersRun(cmd *cobra.Command, args []string) error {
	var peers []string
	if err := call(http.MethodGet, "/v1/peers/list", nil, &peers); err != nil {
		return fmt.Errorf("getting peers: %w", err)
	}

	for _, host := range peers {
		cmd.Println(host)
	}

	return nil
}

func addPeerRun(cmd *cobra.Command, args []string) error {
	req := struct {
		Peer string `json:"peer"`
	}{
		Peer: args[0],
	}

	var resp struct {
		Status string `json:"status"`
	}
	if err := call(http.MethodPost, "/v1/peers/add", req, &resp); err != nil {
		return fmt.Errorf("adding peer: %w", err)
	}

	cmd.Println(resp.Status)

	return nil
}
