package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fleetdesk/driver-import/internal/tabular"
)

var templateOut string

var templateCmd = &cobra.Command{
	Use:   "template [csv|xlsx]",
	Short: "Write the 26-column import template",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := "csv"
		if len(args) == 1 {
			format = args[0]
		}
		switch format {
		case "csv":
			out := templateOut
			if out == "" {
				out = "driver_import_template.csv"
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := tabular.WriteTemplateCSV(f); err != nil {
				return err
			}
			fmt.Println("wrote", out)
		case "xlsx":
			out := templateOut
			if out == "" {
				out = "driver_import_template.xlsx"
			}
			x, err := tabular.TemplateWorkbook()
			if err != nil {
				return err
			}
			if err := x.SaveAs(out); err != nil {
				return err
			}
			fmt.Println("wrote", out)
		default:
			return fmt.Errorf("unknown template format %q", format)
		}
		return nil
	},
}

func init() {
	templateCmd.Flags().StringVarP(&templateOut, "out", "o", "", "output path")
}
