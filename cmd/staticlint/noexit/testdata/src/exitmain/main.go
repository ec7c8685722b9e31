package main

import (
	"log"
	"os"
)

func main() {
	defer cleanup()

	if len(os.Args) > 3 {
		log.Fatal("too many arguments") // want "прямой вызов log.Fatal в функции main запрещен"
	}
	if len(os.Args) > 2 {
		log.Fatalf("unexpected %s", os.Args[2]) // want "прямой вызов log.Fatalf в функции main запрещен"
	}

	logger := log.New(os.Stderr, "", 0)
	if len(os.Args) > 1 {
		logger.Fatal("method calls are allowed")
	}

	func() {
		os.Exit(2) // want "прямой вызов os.Exit в функции main запрещен"
	}()

	os.Exit(1) // want "прямой вызов os.Exit в функции main запрещен"
}

func cleanup() {
	os.Exit(0)
}
