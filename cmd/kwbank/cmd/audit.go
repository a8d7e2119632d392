package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"kwbank/models"
)

var (
	auditCount  int
	auditAction string
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recent audit trail entries",
	RunE:  runAudit,
}

func runAudit(cmd *cobra.Command, args []string) error {
	db, err := openBank()
	if err != nil {
		return err
	}
	defer db.Close()

	var entries []models.AuditEntry
	if auditAction != "" {
		entries, err = db.AuditEntriesByAction(auditAction, auditCount)
	} else {
		entries, err = db.RecentAuditEntries(auditCount)
	}
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No audit entries found.")
		return nil
	}

	fmt.Printf("\n=== Recent Audit Entries (%d) ===\n\n", len(entries))
	for _, entry := range entries {
		fmt.Printf("[%s] %s\n", entry.Timestamp.Format("2006-01-02 15:04:05"), entry.Action)
		fmt.Printf("  User: %s\n", entry.User)
		for key, value := range entry.Details {
			fmt.Printf("  %s: %s\n", key, value)
		}
		fmt.Println()
	}

	return nil
}

func init() {
	auditCmd.Flags().IntVar(&auditCount, "count", 10, "number of recent entries to show")
	auditCmd.Flags().StringVar(&auditAction, "action", "", "filter by action type (optional)")
}
