package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/oryosefi2/shift-mind/pkg/auth"
)

func main() {
	// Load .env from project root
	_ = godotenv.Load("../.env")

	if len(os.Args) < 2 {
		fmt.Println("Usage: keygen <businessID>")
		os.Exit(1)
	}

	businessID := os.Args[1]
	if os.Getenv("API_MASTER_SECRET") == "" {
		fmt.Println("Error: API_MASTER_SECRET not found in .env")
		os.Exit(1)
	}

	apiKey := auth.GenerateBusinessKey(businessID)
	fmt.Printf("Generated Key for %s:\n%s\n", businessID, apiKey)
}
