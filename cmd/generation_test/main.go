package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"io"
	"log"
	"net/http"

	"github.com/gmassist/api/internal/content"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "server base URL")
	theme := flag.String("theme", "Ancient Ruins", "theme or keyword")
	only := flag.String("type", "", "single content type to generate (default: all)")
	temperature := flag.Float64("temperature", 0.7, "creativity level")
	maxTokens := flag.Int("max-tokens", 250, "response length")
	flag.Parse()

	types := content.Types()
	if *only != "" {
		t, err := content.Parse(*only)
		if err != nil {
			log.Fatalf("Invalid content type: %v", err)
		}
		types = []content.Type{t}
	}

	failures := 0
	for _, t := range types {
		reqBody, _ := json.Marshal(map[string]any{
			"content_type": t,
			"theme":        *theme,
			"temperature":  *temperature,
			"max_tokens":   *maxTokens,
		})

		log.Printf("Generating %s...", t)
		resp, err := http.Post(*baseURL+"/api/v1/generate", "application/json", bytes.NewReader(reqBody))
		if err != nil {
			log.Fatalf("Failed to call API: %v", err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			log.Printf("FAIL %s: status %d: %s", t, resp.StatusCode, body)
			failures++
			continue
		}

		var result struct {
			Text           string `json:"text"`
			ModelShortName string `json:"model_short_name"`
			LatencyMs      int64  `json:"latency_ms"`
		}
		if err := json.Unmarshal(body, &result); err != nil {
			log.Printf("FAIL %s: bad response: %v", t, err)
			failures++
			continue
		}
		log.Printf("OK %s via %s in %dms:\n%s\n", t, result.ModelShortName, result.LatencyMs, result.Text)
	}

	if failures > 0 {
		log.Fatalf("%d of %d generations failed", failures, len(types))
	}
	log.Println("Generation test passed")
}
