package commands

import (
	"github.com/spf13/cobra"

	"github.com/educreatorschool-design/hanvitlms/internal/printer"
	"github.com/educreatorschool-design/hanvitlms/pkg/model"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the administrator account if none exists",
	Long: `Seed ensures the local state contains the single ADMIN account. The
admin logs in with the shared secret from the HANVIT_ADMIN_SECRET
environment variable, not a per-account password.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	_, st, files, err := openStore()
	if err != nil {
		return err
	}

	for _, u := range st.Users() {
		if u.Role == model.RoleAdmin {
			printer.Info("Admin account already exists (%s), nothing to do\n", u.Email)
			return nil
		}
	}

	files.Attach(st)

	admin := defaultAdmin()
	if err := st.RegisterUser(admin); err != nil {
		return err
	}
	printer.Success("Created admin account %s\n", admin.Email)

	if len(st.Courses()) == 0 {
		course := exampleCourse()
		if err := st.AddCourse(course); err != nil {
			return err
		}
		printer.Success("Created example course %q\n", course.Title)
	}

	return nil
}

// exampleCourse is a minimal starter course so a fresh install has
// something to enroll into.
func exampleCourse() model.Course {
	return model.Course{
		ID:          model.NewID(),
		Title:       "Introduction to Hanvit",
		Description: "A short orientation course covering how weekly modules, assignments and quizzes work.",
		Major:       "General",
		TotalWeeks:  2,
		Type:        model.CourseTypeText,
		EvaluationCriteria: []model.EvaluationCriterion{
			{Name: "Participation", Percentage: 40},
			{Name: "Final Quiz", Percentage: 60},
		},
		Syllabus: []model.WeeklyModule{
			{Week: 1, Title: "Getting Started", Description: "Accounts, enrollment and the weekly rhythm.", HasDiscussion: true},
			{Week: 2, Title: "Assignments and Quizzes", Description: "Submitting work and reading feedback.", HasAssignment: true, HasExam: true},
		},
	}
}
