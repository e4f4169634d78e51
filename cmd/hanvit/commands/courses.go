package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/educreatorschool-design/hanvitlms/internal/printer"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List all courses with enrollment counts",
	RunE:  runCourses,
}

func init() {
	rootCmd.AddCommand(coursesCmd)
}

func runCourses(cmd *cobra.Command, args []string) error {
	_, st, _, err := openStore()
	if err != nil {
		return err
	}

	courses := st.Courses()
	if len(courses) == 0 {
		printer.Println("No courses found")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("TITLE", "MAJOR", "TYPE", "WEEKS", "ENROLLED", "PENDING")
	for _, c := range courses {
		if err := table.Append(
			c.Title,
			c.Major,
			string(c.Type),
			fmt.Sprintf("%d", c.TotalWeeks),
			fmt.Sprintf("%d", len(c.StudentIDs)),
			fmt.Sprintf("%d", len(c.PendingStudentIDs)),
		); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	printer.Printf("%d course(s)\n", len(courses))
	return nil
}
