package main

import (
	"log"

	"github.com/pinnote/pinnote/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ pinnote failed to start: %v", err)
	}
}
