package cmd

import (
	"fmt"

	"github.com/live-labs/cryptbox/internal/crypto"
	"github.com/live-labs/cryptbox/internal/vault"
)

// Get opens an entry and prints its plaintext to stdout
func Get(name string) {
	v := vault.New(".")

	password := GetVaultPasswordOrExit(v, "Enter password: ")
	defer crypto.ClearBytes(password)

	data, err := v.Get(name, password)
	if err != nil {
		HandleError(err)
	}

	fmt.Println(string(data))
	crypto.ClearBytes(data)
}
