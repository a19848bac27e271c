package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/shaclmaker/shaclmaker/internal/cli/commands"
)

func main() {
	// Environment variables feed the config layer's AutomaticEnv
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
