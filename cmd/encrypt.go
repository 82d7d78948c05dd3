package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/cryptbox/internal/crypto"
)

// Encrypt seals a string from the argument or stdin and prints the envelope
func Encrypt(args []string) {
	input, err := ReadInput(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	// Confirmation prompt: a typo here would seal the data forever
	password, err := GetPasswordConfirm()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(password)

	envelope, err := crypto.Encrypt(input, string(password))
	if err != nil {
		HandleError(err)
	}

	fmt.Println(envelope)
}
