// README: One-shot slot extraction demo against a live Gemini key.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"skybook/internal/ai"
	"skybook/internal/modules/conversation"
)

func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	ctx := context.Background()
	extractor, err := ai.NewGeminiExtractor(ctx, apiKey)
	if err != nil {
		log.Fatalf("Failed to initialize extractor: %v", err)
	}
	defer extractor.Close()

	var known conversation.Slots
	userMessage := "I want to fly from Madrid to Paris on June 5, two of us, back after a week"
	fmt.Printf("User: %s\n", userMessage)

	extracted, err := extractor.Extract(ctx, userMessage, known.Pending(), known)
	if err != nil {
		log.Fatalf("Error extracting fields: %v", err)
	}

	out, _ := json.MarshalIndent(extracted, "", "  ")
	fmt.Printf("Extracted: %s\n", out)
	fmt.Printf("Still pending: %v\n", extracted.Pending())
}
