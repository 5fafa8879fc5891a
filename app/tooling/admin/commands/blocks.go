package commands

import (
	"fmt"
	"net/http"

	"github.com/ardanlabs/chainsync/foundation/blockchain/database"
	"github.com/spf13/cobra"
)

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Print the chain held by the node.",
	Args:  cobra.NoArgs,
	RunE:  blocksRun,
}

var mineCmd = &cobra.Command{
	Use:   "mine <data>",
	Short: "Mine a new block carrying the data.",
	Args:  cobra.ExactArgs(1),
	RunE:  mineRun,
}

func init() {
	rootCmd.AddCommand(blocksCmd)
	rootCmd.AddCommand(mineCmd)
}

func blocksRun(cmd *cobra.Command, args []string) error {
	var blocks []database.Block
	if err := call(http.MethodGet, "/v1/blocks/list", nil, &blocks); err != nil {
		return fmt.Errorf("getting blocks: %w", err)
	}

	return printBlocks(cmd, blocks)
}

func mineRun(cmd *cobra.Command, args []string) error {
	req := struct {
		Data string `json:"data"`
	}{
		Data: args[0],
	}

	var block database.Block
	if err := call(http.MethodPost, "/v1/blocks/mine", req, &block); err != nil {
		return fmt.Errorf("mining block: %w", err)
	}

	return printBlocks(cmd, []database.Block{block})
}
