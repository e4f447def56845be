package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var infoName string

func init() {
	infoCmd.Flags().StringVar(&infoName, "name", "", "The college's display name, used for collaborator lookups.")
	infoCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(infoCmd)
}

type admissionInfo struct {
	TotalApplicants             string `json:"total_applicants"`
	TotalMaleApplicants         string `json:"total_male_applicants"`
	TotalFemaleApplicants       string `json:"total_female_applicants"`
	TotalPercentAdmitted        string `json:"total_percent_admitted"`
	TotalPercentMalesAdmitted   string `json:"total_percent_males_admitted"`
	TotalPercentFemalesAdmitted string `json:"total_percent_females_admitted"`
	SatAvgEnglish               string `json:"sat_avg_english"`
	SatAvgMath                  string `json:"sat_avg_math"`
	ActAvg                      string `json:"act_avg"`
}

type collegeInfo struct {
	AdmissionsUrl   string        `json:"admissions_url"`
	ApplyUrl        string        `json:"apply_url"`
	FinaidUrl       string        `json:"finaid_url"`
	AdmissionInfo   admissionInfo `json:"admission_info"`
	ApplicationReqs []string      `json:"application_reqs"`
}

type infoResponse struct {
	College *collegeInfo `json:"college"`
	Msg     *string      `json:"msg"`
}

var infoCmd = &cobra.Command{
	Use:   "info <ipeds id>",
	Short: "Prints the admissions profile assembled for one college.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var body infoResponse
		res, err := client.R().
			SetContext(cmd.Context()).
			SetQueryParam("name", infoName).
			SetResult(&body).
			Get("/college/info/" + args[0])
		if err != nil {
			log.Fatal(err)
		}
		if res.IsError() || body.College == nil {
			if body.Msg != nil {
				log.Fatal(*body.Msg)
			}
			log.Fatalf("server responded with %s", res.Status())
		}

		info := body.College

		fmt.Println("admissions:", info.AdmissionsUrl)
		fmt.Println("apply:     ", info.ApplyUrl)
		fmt.Println("finaid:    ", info.FinaidUrl)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Statistic", "Value"})
		t.AppendRows([]table.Row{
			{"Total applicants", info.AdmissionInfo.TotalApplicants},
			{"Male applicants", info.AdmissionInfo.TotalMaleApplicants},
			{"Female applicants", info.AdmissionInfo.TotalFemaleApplicants},
			{"Percent admitted", info.AdmissionInfo.TotalPercentAdmitted},
			{"Percent of males admitted", info.AdmissionInfo.TotalPercentMalesAdmitted},
			{"Percent of females admitted", info.AdmissionInfo.TotalPercentFemalesAdmitted},
			{"SAT english average", info.AdmissionInfo.SatAvgEnglish},
			{"SAT math average", info.AdmissionInfo.SatAvgMath},
			{"ACT average", info.AdmissionInfo.ActAvg},
		})
		t.SetStyle(table.StyleRounded)
		t.Render()

		if len(info.ApplicationReqs) > 0 {
			fmt.Println("application requirements:")
			for _, req := range info.ApplicationReqs {
				fmt.Println("  -", req)
			}
		}
	},
}
