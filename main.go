package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/parsec/cli"
	"github.com/ardnew/parsec/log"
)

func main() {
	if err := cli.Run(context.Background(), os.Exit, os.Args[1:]...); err != nil {
		log.Error("sexp failed", slog.Any("error", err))
		os.Exit(1)
	}
}
