package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/cryptbox/internal/crypto"
	"github.com/live-labs/cryptbox/internal/vault"
)

// Diff compares a stored entry with a local file
func Diff(name, file string) {
	v := vault.New(".")

	local, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot read %s: %s\n", file, err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(local)

	password := GetVaultPasswordOrExit(v, "Enter password: ")
	defer crypto.ClearBytes(password)

	diff, err := v.DiffEntry(name, local, password)
	if err != nil {
		HandleError(err)
	}

	if diff == "" {
		fmt.Printf("%s: no differences\n", name)
		return
	}
	fmt.Print(diff)
}
