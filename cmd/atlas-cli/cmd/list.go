package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	listName   string
	listNear   string
	listWithin string
)

func init() {
	listCmd.Flags().StringVar(&listName, "name", "", "Only show colleges whose name contains this text.")
	listCmd.Flags().StringVar(&listNear, "near", "", "A place to measure distance from, e.g. 'Boston, MA'.")
	listCmd.Flags().StringVar(&listWithin, "within", "", "Maximum distance from --near in miles.")
	rootCmd.AddCommand(listCmd)
}

type geoPoint struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type college struct {
	IpedsId  string   `json:"ipedsid"`
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	City     string   `json:"city"`
	State    string   `json:"state"`
	Zip      string   `json:"zip"`
	GeoPoint geoPoint `json:"geo_point_2d"`
}

type listResponse struct {
	Colleges []college `json:"colleges"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Prints the college catalog, optionally filtered by name and distance.",
	Run: func(cmd *cobra.Command, args []string) {
		var body listResponse
		req := client.R().
			SetContext(cmd.Context()).
			SetResult(&body)

		var path string
		if listName == "" && listNear == "" && listWithin == "" {
			path = "/colleges/list-all"
		} else {
			path = "/colleges/with-params"
			req.SetQueryParams(map[string]string{
				"name":           listName,
				"starting_point": listNear,
				"max_distance":   listWithin,
			})
		}

		res, err := req.Get(path)
		if err != nil {
			log.Fatal(err)
		}
		if res.IsError() {
			log.Fatalf("server responded with %s", res.Status())
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"IPEDS ID", "Name", "City", "State"})
		for _, c := range body.Colleges {
			t.AppendRow(table.Row{c.IpedsId, c.Name, c.City, c.State})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()

		fmt.Printf("%d colleges\n", len(body.Colleges))
	},
}
