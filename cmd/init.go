package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/live-labs/cryptbox/internal/crypto"
	"github.com/live-labs/cryptbox/internal/vault"
)

// Init creates a new .cryptbox vault
func Init() {
	v := vault.New(".")

	// Read password (env var or prompt with confirmation)
	password, err := GetPasswordConfirm()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(password)

	if err := v.Init(password); err != nil {
		if errors.Is(err, vault.ErrAlreadyExists) {
			fmt.Fprintf(os.Stderr, "Error: .cryptbox already exists in this directory\n")
			fmt.Fprintf(os.Stderr, "Use 'cryptbox status' to see current state\n")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}

	fmt.Println("✓ Initialized .cryptbox")
}
