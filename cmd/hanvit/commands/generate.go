package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/educreatorschool-design/hanvitlms/internal/ai"
	"github.com/educreatorschool-design/hanvitlms/internal/printer"
)

var quizCount int

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "AI-assisted content generation for a course",
}

var generateSyllabusCmd = &cobra.Command{
	Use:   "syllabus <course-id>",
	Short: "Draft a weekly syllabus for a course",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerateSyllabus,
}

var generateMaterialCmd = &cobra.Command{
	Use:   "material <course-id> <week>",
	Short: "Write study material for one week of a course",
	Args:  cobra.ExactArgs(2),
	RunE:  runGenerateMaterial,
}

var generateQuizCmd = &cobra.Command{
	Use:   "quiz <course-id> <week>",
	Short: "Create quiz questions from a week's study material",
	Args:  cobra.ExactArgs(2),
	RunE:  runGenerateQuiz,
}

func init() {
	generateQuizCmd.Flags().IntVarP(&quizCount, "count", "n", ai.DefaultQuizCount, "Number of questions to generate")

	generateCmd.AddCommand(generateSyllabusCmd)
	generateCmd.AddCommand(generateMaterialCmd)
	generateCmd.AddCommand(generateQuizCmd)
	rootCmd.AddCommand(generateCmd)
}

func runGenerateSyllabus(cmd *cobra.Command, args []string) error {
	cfg, st, files, err := openStore()
	if err != nil {
		return err
	}
	files.Attach(st)

	course := st.CourseByID(args[0])
	if course == nil {
		return fmt.Errorf("course %q not found", args[0])
	}

	client, err := ai.NewClient(cmd.Context(), cfg.GeminiAPIKey)
	if err != nil {
		return err
	}
	defer client.Close()

	weeks := client.GenerateSyllabus(cmd.Context(), course.Title, course.Description, course.TotalWeeks, course.Type)
	if len(weeks) == 0 {
		printer.Warning("Syllabus generation produced nothing; course left unchanged\n")
		return nil
	}

	course.Syllabus = weeks
	if err := st.UpdateCourse(*course); err != nil {
		return err
	}

	printer.Success("Generated a %d-week syllabus for %q\n", len(weeks), course.Title)
	return nil
}

func runGenerateMaterial(cmd *cobra.Command, args []string) error {
	cfg, st, files, err := openStore()
	if err != nil {
		return err
	}
	files.Attach(st)

	course, week, idx, err := resolveWeek(st, args[0], args[1])
	if err != nil {
		return err
	}

	client, err := ai.NewClient(cmd.Context(), cfg.GeminiAPIKey)
	if err != nil {
		return err
	}
	defer client.Close()

	material := client.GenerateStudyMaterial(cmd.Context(), course.Title, week.Title, week.Description)
	if material == "" {
		printer.Warning("Study material generation produced nothing; week left unchanged\n")
		return nil
	}
	course.Syllabus[idx].StudyMaterial = material

	// Assignment and discussion prompts come from the same material.
	if week.HasAssignment || week.HasDiscussion {
		details := client.GenerateActivityDetails(cmd.Context(), course.Title, week.Title, material)
		course.Syllabus[idx].AssignmentTitle = details.AssignmentTitle
		course.Syllabus[idx].AssignmentDescription = details.AssignmentDescription
		course.Syllabus[idx].DiscussionTopic = details.DiscussionTopic
		course.Syllabus[idx].DiscussionDescription = details.DiscussionDescription
	}

	if err := st.UpdateCourse(*course); err != nil {
		return err
	}

	printer.Success("Generated study material for week %d of %q\n", week.Week, course.Title)
	return nil
}

func runGenerateQuiz(cmd *cobra.Command, args []string) error {
	cfg, st, files, err := openStore()
	if err != nil {
		return err
	}
	files.Attach(st)

	course, week, idx, err := resolveWeek(st, args[0], args[1])
	if err != nil {
		return err
	}
	if week.StudyMaterial == "" {
		return fmt.Errorf("week %d of course %q has no study material yet; run `hanvit generate material` first", week.Week, course.Title)
	}

	client, err := ai.NewClient(cmd.Context(), cfg.GeminiAPIKey)
	if err != nil {
		return err
	}
	defer client.Close()

	questions := client.GenerateQuiz(cmd.Context(), week.StudyMaterial, quizCount)
	if len(questions) == 0 {
		printer.Warning("Quiz generation produced nothing; week left unchanged\n")
		return nil
	}

	course.Syllabus[idx].Quiz = questions
	if err := st.UpdateCourse(*course); err != nil {
		return err
	}

	printer.Success("Generated %d quiz questions for week %d of %q\n", len(questions), week.Week, course.Title)
	return nil
}
