package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avinashb/quizmind/internal/bank"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List available quiz subjects",
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range bank.Builtin().Subjects() {
			fmt.Println(s)
		}
	},
}
