package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/cryptbox/internal/crypto"
)

// Decrypt opens an envelope from the argument or stdin and prints the plaintext
func Decrypt(args []string) {
	input, err := ReadInput(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	password := GetPasswordOrExit("Enter password: ")
	defer crypto.ClearBytes(password)

	plaintext, err := crypto.Decrypt(input, string(password))
	if err != nil {
		HandleError(err)
	}

	fmt.Println(plaintext)
}
