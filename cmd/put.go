package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/live-labs/cryptbox/internal/crypto"
	"github.com/live-labs/cryptbox/internal/vault"
)

// Put seals a secret under a name in the vault. The value comes from a file
// argument or piped stdin. Overwriting an existing entry prints a diff of
// what changes first.
func Put(name string, file string) {
	v := vault.New(".")

	var data []byte
	var err error
	if file != "" {
		data, err = os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot read %s: %s\n", file, err)
			os.Exit(1)
		}
	} else {
		input, err := ReadInput(nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		data = []byte(input)
	}
	defer crypto.ClearBytes(data)

	password := GetVaultPasswordOrExit(v, "Enter password: ")
	defer crypto.ClearBytes(password)

	// Preview what an overwrite would change
	diff, err := v.DiffEntry(name, data, password)
	switch {
	case err == nil && diff != "":
		fmt.Fprintf(os.Stderr, "Replacing existing entry:\n%s", diff)
	case err != nil && !errors.Is(err, vault.ErrEntryNotFound):
		HandleError(err)
	}

	replaced, err := v.Put(name, data, password)
	if err != nil {
		HandleError(err)
	}

	if replaced {
		fmt.Printf("updated: %s\n", name)
	} else {
		fmt.Printf("stored: %s\n", name)
	}
}
