package main

import (
	"fmt"
	"os"

	"collegeatlas-backend/cmd/atlas-cli/cmd"
)

func main() {
	baseUrl, ok := os.LookupEnv("ATLAS_BASE_URL")
	if !ok {
		fmt.Println("You should specify the base url of the college atlas server in the environment variable ATLAS_BASE_URL.")
		os.Exit(1)
	}
	cmd.BaseUrl = baseUrl

	cmd.Execute()
}
