/*
Copyright © 2025 proposalops
*/
package main

import (
	"github.com/joho/godotenv"

	"github.com/proposalops/docchat-be/cmd"
)

func main() {
	// A missing .env file is fine; everything can come from the config
	// file or real environment variables.
	godotenv.Load()

	cmd.Execute()
}
