package commands

import (
	"strconv"

	"github.com/ardanlabs/chainsync/foundation/blockchain/database"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// printBlocks renders the blocks as a table with one row per block.
func printBlocks(cmd *cobra.Command, blocks []database.Block) error {
	data := pterm.TableData{
		{"Index", "Hash", "Previous Hash", "Timestamp", "Data"},
	}

	for _, block := range blocks {
		data = append(data, []string{
			strconv.FormatUint(block.Index, 10),
			block.Hash,
			block.PreviousHash,
			strconv.FormatFloat(block.Timestamp, 'f', 3, 64),
			block.Data,
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}

	cmd.Println(table)

	return nil
}
