// Example program demonstrating the envdeps library API.
//
// Run from a project directory containing composer.json:
//
//	go run github.com/MyCarrier-DevOps/go-envdeps/example
//
// Set APP_ENV to exercise host variable detection when the project's
// settings enable it.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/MyCarrier-DevOps/go-envdeps/pkg/envdeps"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	resolved, err := envdeps.Resolve(ctx, envdeps.Options{Path: ".", Logger: logger})
	if err != nil {
		log.Fatalf("resolve failed: %v", err)
	}
	printResolution(resolved)

	result, err := envdeps.Apply(ctx, envdeps.Options{Path: ".", Logger: logger})
	if err != nil {
		log.Fatalf("apply failed: %v", err)
	}

	data, err := json.MarshalIndent(result.Manifest, "", "    ")
	if err != nil {
		log.Fatalf("encoding manifest: %v", err)
	}
	fmt.Println(string(data))
}

func printResolution(result *envdeps.Result) {
	fmt.Println("=== Environment ===")
	if result.Skipped != nil {
		fmt.Printf("%-12s %v\n", "skipped", result.Skipped)
		fmt.Println()
		return
	}
	fmt.Printf("%-12s %s\n", "environment", result.Resolution.Environment)
	fmt.Printf("%-12s %s\n", "strategy", result.Resolution.Strategy)
	fmt.Printf("%-12s %s\n", "source", result.Resolution.Source)
	fmt.Println()
}
