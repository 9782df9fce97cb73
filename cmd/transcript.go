package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/registrar/internal/application/enrollment"
	"github.com/zjrosen/registrar/internal/presentation"
	"github.com/zjrosen/registrar/internal/shell"
)

var transcriptStudent string

var transcriptCmd = &cobra.Command{
	Use:   "transcript",
	Short: "Print one student's transcript as JSON",
	Long: `Load a roster file and print the transcript of one student as JSON.

The student is given by id (as assigned while loading the roster, starting at
1) or by name.

Examples:
  registrar transcript --roster roster.yaml --student 2
  registrar transcript -r roster.yaml -s "Ada Lovelace"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Roster == "" {
			return errors.New("--roster is required")
		}
		if transcriptStudent == "" {
			return errors.New("--student is required")
		}

		rt, err := newRuntime(cmd.Context(), cfg, debugEnabled())
		if err != nil {
			return err
		}
		defer rt.Close()

		if _, err := rt.loadRoster(cmd.Context(), cfg.Roster); err != nil {
			return err
		}

		student, err := resolveStudent(rt.svc, transcriptStudent)
		if err != nil {
			return err
		}
		tr, err := rt.svc.Transcript(cmd.Context(), student.ID)
		if err != nil {
			return err
		}
		return presentation.NewFormatter(cmd.OutOrStdout()).FormatTranscript(presentation.FromTranscript(tr))
	},
}

func init() {
	transcriptCmd.Flags().StringVarP(&transcriptStudent, "student", "s", "", "student id or name")
	rootCmd.AddCommand(transcriptCmd)
}

// resolveStudent accepts an id ("2", "#2") or a name.
func resolveStudent(svc *enrollment.Service, ref string) (enrollment.StudentView, error) {
	if id, err := shell.ParseStudentID(ref); err == nil {
		return svc.Student(id)
	}
	st, err := svc.StudentByName(ref)
	if err != nil {
		return enrollment.StudentView{}, fmt.Errorf("student %q: %w", ref, err)
	}
	return st, nil
}
