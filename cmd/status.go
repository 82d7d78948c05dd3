package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/live-labs/cryptbox/internal/vault"
)

// Status shows the current state of the vault. No password required.
func Status() {
	v := vault.New(".")

	if !v.Exists() {
		fmt.Println("No .cryptbox file found in current directory")
		fmt.Println("Run 'cryptbox init' to create one")
		return
	}

	status, err := v.GetStatus()
	if err != nil {
		HandleError(err)
	}

	fmt.Println("Stored entries:")
	if len(status.Entries) == 0 {
		fmt.Println("  (none)")
	} else {
		for _, entry := range status.Entries {
			fmt.Printf("  %s (%s, modified %s)\n",
				entry.Name, formatSize(entry.Size), entry.Modified.Format("2006-01-02 15:04"))
		}
	}

	info, err := os.Stat(v.Path())
	if err != nil {
		HandleError(err)
	}
	fmt.Printf("\n.cryptbox: %s (last modified: %s)\n",
		formatSize(info.Size()), status.LastModified.Format(time.RFC3339))
}
