package main

import (
	"context"
	"os"

	"github.com/fhuszti/tmpfiles-ms-go/internal/logger"
)

func main() {
	ctx := context.Background()
	logger.Init()

	if err := NewRootCommand(ctx, loadStager).Execute(); err != nil {
		os.Exit(1)
	}
}
