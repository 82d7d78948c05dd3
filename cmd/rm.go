package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/cryptbox/internal/crypto"
	"github.com/live-labs/cryptbox/internal/vault"
)

// Remove removes entries from the vault
func Remove(names []string) {
	if len(names) == 0 {
		fmt.Fprintf(os.Stderr, "Error: rm requires at least one entry name\n")
		fmt.Fprintf(os.Stderr, "Usage: cryptbox rm <name> [name...]\n")
		os.Exit(1)
	}

	v := vault.New(".")

	password := GetVaultPasswordOrExit(v, "Enter password: ")
	defer crypto.ClearBytes(password)

	if err := v.Remove(names, password); err != nil {
		HandleError(err)
	}

	for _, name := range names {
		fmt.Printf("removed: %s\n", name)
	}

	// Compact database to reclaim space
	if err := v.Compact(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: compaction failed: %s\n", err)
	}
}
