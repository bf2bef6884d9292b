package main

import (
	"log"

	"github.com/dailyglow/glow/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ glow failed to start: %v", err)
	}
}
