package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"

	"github.com/farellandr/encuentro/internal/server"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to an optional YAML config file")
	flag.Parse()

	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	if err := server.Start(*configPath); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
