// Command httpmsg inspects URIs and builds HTTP request messages.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"braces.dev/errtrace"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := loadEnvFile(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newApp(os.Stdout, os.Stderr).Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadEnvFile(name string) error {
	if _, err := os.Stat(name); err == nil {
		return errtrace.Wrap(godotenv.Load(name))
	}
	return nil
}
