// Command mfagen generates a TOTP secret for the admin account.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"cenovnik/internal/logger"

	"github.com/pquerna/otp/totp"
)

func main() {
	logger.SetDefault(logger.New())

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("Failed to generate MFA secret", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("mfagen", flag.ContinueOnError)
	fs.SetOutput(stdout)
	issuer := fs.String("issuer", "e-cenovnik.mk (admin)", "issuer shown in the authenticator app")
	account := fs.String("account", "admin", "account name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Starting MFA generation")

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      *issuer,
		AccountName: *account,
	})
	if err != nil {
		return fmt.Errorf("failed to generate secret: %w", err)
	}

	fmt.Fprintln(stdout, "Your MFA secret (base32) is:", key.Secret())
	fmt.Fprintln(stdout, "QR Code URL (optional):", key.URL())
	return nil
}
