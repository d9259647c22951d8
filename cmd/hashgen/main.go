// Command hashgen prints a bcrypt hash for ADMIN_PASSWORD_HASH.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"cenovnik/internal/logger"

	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/crypto/bcrypt"
)

var errNoPassword = errors.New("no password given: pass -password or set ADMIN_PASSWORD")

func main() {
	logger.SetDefault(logger.New())

	if err := run(os.Args[1:], os.Getenv, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("Failed to generate hash", "error", err)
		os.Exit(1)
	}
}

func run(args []string, getenv func(string) string, stdout io.Writer) error {
	fs := flag.NewFlagSet("hashgen", flag.ContinueOnError)
	fs.SetOutput(stdout)
	password := fs.String("password", "", "password to hash (defaults to $ADMIN_PASSWORD)")
	cost := fs.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *password == "" {
		*password = getenv("ADMIN_PASSWORD")
	}
	if *password == "" {
		return errNoPassword
	}
	if *cost < bcrypt.MinCost || *cost > bcrypt.MaxCost {
		return fmt.Errorf("cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), *cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	fmt.Fprintln(stdout, "Your bcrypt hash is:", string(hash))
	return nil
}
