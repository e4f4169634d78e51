package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/educreatorschool-design/hanvitlms/internal/ai"
	"github.com/educreatorschool-design/hanvitlms/internal/printer"
	"github.com/educreatorschool-design/hanvitlms/pkg/model"
)

var gradeMaxScore int

var gradeCmd = &cobra.Command{
	Use:   "grade <submission-id>",
	Short: "Auto-grade a submission with AI and record the score",
	Args:  cobra.ExactArgs(1),
	RunE:  runGrade,
}

func init() {
	gradeCmd.Flags().IntVar(&gradeMaxScore, "max-score", 100, "Maximum score for this submission")
	rootCmd.AddCommand(gradeCmd)
}

func runGrade(cmd *cobra.Command, args []string) error {
	cfg, st, files, err := openStore()
	if err != nil {
		return err
	}
	files.Attach(st)

	var sub *model.Submission
	for _, s := range st.Submissions() {
		if s.ID == args[0] {
			sub = &s
			break
		}
	}
	if sub == nil {
		return fmt.Errorf("submission %q not found", args[0])
	}

	course, week, _, err := resolveWeek(st, sub.CourseID, strconv.Itoa(sub.Week))
	if err != nil {
		return err
	}

	question, reference := gradingContext(sub, week)

	client, err := ai.NewClient(cmd.Context(), cfg.GeminiAPIKey)
	if err != nil {
		return err
	}
	defer client.Close()

	result := client.AutoGrade(cmd.Context(), question, sub.Content, reference, gradeMaxScore)
	st.GradeSubmission(sub.ID, result.Score, result.Feedback)

	printer.Success("Graded submission for week %d of %q: %d/%d\n", sub.Week, course.Title, result.Score, gradeMaxScore)
	printer.Info("Feedback: %s\n", result.Feedback)
	return nil
}

// gradingContext picks the question text and the reference material the
// grader should judge against, based on what kind of submission it is.
func gradingContext(sub *model.Submission, week *model.WeeklyModule) (question, reference string) {
	switch sub.Type {
	case model.SubmissionExam:
		var sb strings.Builder
		for _, q := range week.Quiz {
			fmt.Fprintf(&sb, "Q: %s\nA: %s\n", q.Question, q.CorrectAnswer)
		}
		return "Weekly quiz: " + week.Title, sb.String()
	case model.SubmissionAssignment:
		return week.AssignmentTitle + ": " + week.AssignmentDescription, week.StudyMaterial
	case model.SubmissionDiscussion:
		return week.DiscussionTopic + ": " + week.DiscussionDescription, week.StudyMaterial
	default:
		return week.Title, week.StudyMaterial
	}
}
