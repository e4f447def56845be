package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(warmCmd)
}

var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Primes the server's catalog cache by requesting the full college list.",
	Run: func(cmd *cobra.Command, args []string) {
		start := time.Now()

		var body listResponse
		res, err := client.R().
			SetContext(cmd.Context()).
			SetResult(&body).
			Get("/colleges/list-all")
		if err != nil {
			log.Fatal(err)
		}
		if res.IsError() {
			log.Fatalf("server responded with %s", res.Status())
		}

		fmt.Printf("cached %d colleges in %s\n", len(body.Colleges), time.Since(start).Round(time.Millisecond))
	},
}
