package cmd

import (
	"fmt"
	"os"

	"github.com/live-labs/cryptbox/internal/vault"
)

// Compact compacts the .cryptbox database to reclaim unused space
func Compact() {
	v := vault.New(".")

	info, err := os.Stat(v.Path())
	if err != nil {
		HandleError(err)
	}
	sizeBefore := info.Size()

	if err := v.Compact(); err != nil {
		HandleError(err)
	}

	info, err = os.Stat(v.Path())
	if err != nil {
		HandleError(err)
	}
	sizeAfter := info.Size()

	fmt.Printf("Compacted: %s -> %s\n", formatSize(sizeBefore), formatSize(sizeAfter))
}
