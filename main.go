package main

import (
	"github.com/joho/godotenv"

	"github.com/behalnihal/rag-chatbot-backend/cmd"
)

func main() {
	// .env is optional; production deployments set real environment variables.
	_ = godotenv.Load()
	cmd.Execute()
}
