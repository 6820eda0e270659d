package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"HealthPortal/internal/models"
	"HealthPortal/internal/panel"
)

var assessByID bool

var assessCmd = &cobra.Command{
	Use:   "assess [symptom...]",
	Short: "Run the symptom assessment offline",
	Long: `Assess a set of symptoms by name (or by id with --ids) and print the
result as JSON. Unknown symptoms are ignored.

Example:
  healthportal assess "Chest pain"
  healthportal assess --ids 1 10`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		symptoms := panel.NewSymptoms(models.SymptomCatalog())
		var a models.Assessment
		if assessByID {
			a = symptoms.AssessByIDs(args)
		} else {
			a = symptoms.AssessByNames(args)
		}
		if len(a.Selected) == 0 {
			fmt.Fprintf(os.Stderr, "no known symptoms in %q, known: %s\n", args, knownSymptoms())
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	},
}

func init() {
	assessCmd.Flags().BoolVar(&assessByID, "ids", false, "treat arguments as symptom ids")
}

func knownSymptoms() string {
	names := make([]string, 0, 12)
	for _, s := range models.SymptomCatalog() {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}
