package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(askCmd)
}

type askResponse struct {
	Answer string `json:"answer"`
}

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Asks the admissions collaborator a free-form question.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var body askResponse
		res, err := client.R().
			SetContext(cmd.Context()).
			SetQueryParam("question", strings.Join(args, " ")).
			SetResult(&body).
			Get("/colleges/ask")
		if err != nil {
			log.Fatal(err)
		}
		if res.IsError() {
			log.Fatalf("server responded with %s", res.Status())
		}

		fmt.Println(body.Answer)
	},
}
