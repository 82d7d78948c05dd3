package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/live-labs/cryptbox/internal/crypto"
	"github.com/live-labs/cryptbox/internal/totp"
)

// Totp prints the current one-time code from a seed file. With watch, it
// prints a new line each time the 30-second period rolls over, until the
// context is cancelled.
func Totp(ctx context.Context, seedPath string, watch bool) {
	if seedPath == "" {
		seedPath = totp.DefaultSeedFile
	}

	secret, err := totp.LoadSeed(seedPath)
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(secret)

	fmt.Println(totp.Code(secret, time.Now()))
	if !watch {
		return
	}

	for {
		timer := time.NewTimer(totp.Remaining(time.Now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			fmt.Println(totp.Code(secret, time.Now()))
		}
	}
}
