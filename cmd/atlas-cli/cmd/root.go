package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var BaseUrl string

var client *resty.Client

var rootCmd = &cobra.Command{
	Use:   "atlas-cli",
	Short: "atlas-cli is a CLI interface for the College Atlas server.",
}

func Execute() {
	client = resty.New().
		SetBaseURL(BaseUrl).
		SetTimeout(time.Second * 30)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
