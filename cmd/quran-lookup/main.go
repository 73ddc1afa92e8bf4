package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/sayedmahmoud266/quran-lookup/internal/cli"
)

func main() {
	_ = godotenv.Load(".env")
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
