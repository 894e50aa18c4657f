package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avinashb/quizmind/internal/bank"
	"github.com/avinashb/quizmind/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime accuracy per subject",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")

		path, err := resolveDBPath(cmd)
		if err != nil {
			return err
		}
		st, err := store.Open(path)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer st.Close()

		repo := st.AttemptRepo()
		for _, subject := range bank.Builtin().Subjects() {
			s, err := repo.SubjectStats(cmd.Context(), userID, subject)
			if err != nil {
				return err
			}
			if s.Attempts == 0 {
				fmt.Printf("%-25s no attempts yet\n", subject)
				continue
			}
			fmt.Printf("%-25s %d/%d correct (%.0f%%)\n", subject, s.Correct, s.Attempts, s.Accuracy*100)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().String("user", "local", "User id")
}
