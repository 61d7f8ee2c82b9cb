package main

import (
	"flag"
	"log"

	"spies/internal/engine"
	"spies/internal/server"
)

func main() {
	port := flag.Int("port", 8080, "server port")
	cards := flag.String("cards", "", "optional YAML card catalog overriding the built-in set")
	flag.Parse()

	cfg := engine.DefaultConfig()
	if *cards != "" {
		cat, err := engine.LoadCatalog(*cards)
		if err != nil {
			log.Fatalf("load catalog: %v", err)
		}
		cfg.Catalog = cat
	}

	srv := server.New(*port, cfg)
	if err := srv.Start(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
