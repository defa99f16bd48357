package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/snackcounter/api/internal/config"
	"github.com/snackcounter/api/migrations"
)

func main() {
	_ = godotenv.Load()

	steps := flag.Int("steps", 1, "Number of migrations to roll back with 'down'")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: migrate [-steps N] up|down|version\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	dbURL := config.Load().DatabaseURL

	switch flag.Arg(0) {
	case "up":
		if err := migrations.Up(dbURL); err != nil {
			log.Fatalf("Migrate up failed: %v", err)
		}
		log.Println("Schema is up to date")
	case "down":
		if *steps < 1 {
			log.Fatalf("-steps must be at least 1")
		}
		if err := migrations.Down(dbURL, *steps); err != nil {
			log.Fatalf("Migrate down failed: %v", err)
		}
		log.Printf("Rolled back %d migration(s)", *steps)
	case "version":
		v, dirty, err := migrations.Version(dbURL)
		if err != nil {
			log.Fatalf("Read version failed: %v", err)
		}
		log.Printf("Schema version %d (dirty: %t)", v, dirty)
	default:
		flag.Usage()
		os.Exit(2)
	}
}
