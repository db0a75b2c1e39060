//go:build ignore

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/diogo/tutorchat/internal/api"
	"github.com/diogo/tutorchat/internal/config"
	"github.com/diogo/tutorchat/internal/format"
)

// Smoke check against a running backend: go run test_final.go
func main() {
	fmt.Println("=== Endpoint Smoke Test ===")

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Config error: %v\n", err)
		os.Exit(1)
	}

	client, err := api.NewClient(cfg.Endpoint, api.WithChatPath(cfg.ChatPath), api.WithTimeout(cfg.Timeout()))
	if err != nil {
		fmt.Printf("Client error: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	prompt := "Show a Python function that converts Celsius to Fahrenheit, with a short explanation."
	fmt.Printf("[%s] POST %s\n", time.Now().Format("15:04:05"), client.URL())

	start := time.Now()
	resp, err := client.Send(context.Background(), prompt)
	if err != nil {
		fmt.Printf("[%s] Failed after %v: %v\n", time.Now().Format("15:04:05"), time.Since(start), err)
		os.Exit(1)
	}
	fmt.Printf("[%s] Done in %v\n\n", time.Now().Format("15:04:05"), time.Since(start))

	if resp.HasError() {
		fmt.Println(resp.DisplayText())
		os.Exit(1)
	}

	fragment, blocks := format.FormatBlocks(resp.Response)
	fmt.Printf("Fragment (%d bytes):\n%s\n\n", len(fragment), fragment)
	for i, block := range blocks {
		fmt.Printf("Code block %d [%s]:\n%s\n", i+1, block.Language, block.Code)
	}
}
