package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bizledger/backend/internal/application/usecase/audit"
	"github.com/bizledger/backend/internal/infra/db"
	"github.com/bizledger/backend/internal/integration/persistence"
)

func newAuditCmd() *cobra.Command {
	var (
		userFlag string
		fix      bool
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Recompute document balances from their payments",
		Long: `audit compares the stored paid amount of every sale, purchase and loan
of a user with the sum of its payments. With --fix, drifted documents are
rewritten from their payments.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := uuid.Parse(userFlag)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}

			database, err := db.Open(cmd.Context(), &cfg.Database)
			if err != nil {
				return err
			}
			defer database.Close()

			store := persistence.NewLedgerStore(database.DB(), cfg.Ledger.TxTimeout)
			useCase := audit.NewRecomputeBalancesUseCase(store)

			output, err := useCase.Execute(cmd.Context(), audit.RecomputeBalancesInput{
				UserID: userID,
				Fix:    fix,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "checked %d documents, %d drifted\n", output.Checked, len(output.Drifts))
			if len(output.Drifts) == 0 {
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tNUMBER\tSTORED\tRECOMPUTED\tFIXED\tERROR")
			unresolved := 0
			for _, d := range output.Drifts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\t%s\n",
					d.Kind, d.Number, d.StoredPaid.StringFixed(2), d.RecomputedPaid.StringFixed(2), d.Fixed, d.Error)
				if !d.Fixed {
					unresolved++
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if unresolved > 0 {
				return fmt.Errorf("%d documents drifted from their payments", unresolved)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "owner user ID to audit")
	cmd.Flags().BoolVar(&fix, "fix", false, "rewrite drifted documents from their payments")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
