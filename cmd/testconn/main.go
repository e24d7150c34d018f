package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gmassist/api/internal/config"
	"github.com/gmassist/api/internal/inference"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	gw, err := inference.New(ctx, cfg.ProviderConfig())
	if err != nil {
		fmt.Printf("Error creating gateway: %v\n", err)
		os.Exit(1)
	}
	defer gw.Close()

	fmt.Println("Provider:", gw.Name())
	if cfg.BaseURL != "" {
		fmt.Println("Endpoint:", cfg.BaseURL)
	}

	if checker, ok := gw.(inference.Checker); ok {
		if err := checker.Check(ctx); err != nil {
			fmt.Printf("Error checking endpoint: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Endpoint reachable, token accepted")
	}

	failed := false
	for _, model := range []string{cfg.Models.Conversational, cfg.Models.Instruct} {
		start := time.Now()
		resp, err := gw.Generate(ctx, inference.Request{
			Model:       model,
			Prompt:      "Name one fantasy tavern. Reply with the name only.",
			Temperature: 0.1,
			MaxTokens:   100,
		})
		if err != nil {
			fmt.Printf("%s: error: %v\n", model, err)
			failed = true
			continue
		}
		fmt.Printf("%s: %q (%s)\n", model, resp.Text, time.Since(start).Round(time.Millisecond))
	}

	if failed {
		os.Exit(1)
	}
	fmt.Println("Connection successful!")
}
