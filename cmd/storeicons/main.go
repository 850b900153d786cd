package main

import (
	"context"
	"fmt"
	"os"

	"storeicons/internal/bootstrap"
)

func main() {
	if err := bootstrap.Run(context.Background(), os.Args[1:]); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "storeicons failed: %v\n", err)
		os.Exit(1)
	}
}
