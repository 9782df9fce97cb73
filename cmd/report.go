package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/zjrosen/registrar/internal/presentation"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Load a roster and print every course and student as JSON",
	Long: `Load a roster file and print the resulting courses and students as JSON,
together with the load summary (applied, unchanged and rejected entries).

Examples:
  registrar report --roster roster.yaml
  registrar report -r grades.xlsx | jq '.students[] | {name, average}'
  registrar report -r roster.yaml | jq '.rejections'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Roster == "" {
			return errors.New("--roster is required")
		}

		rt, err := newRuntime(cmd.Context(), cfg, debugEnabled())
		if err != nil {
			return err
		}
		defer rt.Close()

		report, err := rt.loadRoster(cmd.Context(), cfg.Roster)
		if err != nil {
			return err
		}

		dto := presentation.FromLoadReport(report)
		for _, c := range rt.svc.Courses() {
			dto.Courses = append(dto.Courses, presentation.FromCourseView(c))
		}
		for _, s := range rt.svc.Students() {
			avg, err := rt.svc.AverageGrade(cmd.Context(), s.ID)
			if err != nil {
				return err
			}
			dto.Students = append(dto.Students, presentation.FromStudentView(s, avg))
		}

		return presentation.NewFormatter(cmd.OutOrStdout()).FormatReport(dto)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
