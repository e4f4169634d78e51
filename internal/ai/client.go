// Package ai wraps the Gemini API for course content generation and
// submission grading. Every call builds a natural-language prompt plus a
// strict output schema, invokes the model and parses the structured
// response into domain types.
//
// The contract is graceful degradation: on any failure after construction
// (network error, malformed response, empty candidate) a call returns an
// empty or zero-value result instead of an error, and the failure is
// logged. The one exception is a missing API key, which fails fast in
// NewClient before any network call.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/educreatorschool-design/hanvitlms/pkg/model"
)

// DefaultModel is the Gemini model used for all generation calls.
const DefaultModel = "gemini-1.5-flash"

// DefaultQuizCount is how many questions GenerateQuiz produces when the
// caller does not ask for a specific number.
const DefaultQuizCount = 3

// Client is a stateless request/response wrapper around the Gemini API.
type Client struct {
	gc        *genai.Client
	modelName string
}

// NewClient creates an AI client. Fails fast when apiKey is empty; this
// is the only error path callers must handle, everything later degrades.
// Extra options (endpoint overrides and the like) are appended after the
// API key.
func NewClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("AI API key is missing")
	}
	all := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	gc, err := genai.NewClient(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Gemini client: %w", err)
	}
	return &Client{gc: gc, modelName: DefaultModel}, nil
}

// Close releases the underlying connection. Implements io.Closer.
func (c *Client) Close() error {
	return c.gc.Close()
}

// generateJSON runs one structured-output generation call and returns the
// raw response text. schema may be nil for free-text calls.
func (c *Client) generateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	m := c.gc.GenerativeModel(c.modelName)
	if schema != nil {
		m.ResponseMIMEType = "application/json"
		m.ResponseSchema = schema
	}

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("empty model response")
	}
	return text, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String()
}

// extractJSON finds the first complete JSON value in raw model output.
// Models sometimes wrap JSON in markdown fences or surround it with
// prose; this strips both. Returns "" when no valid JSON is present.
func extractJSON(raw string) string {
	if start := strings.Index(raw, "```json"); start != -1 {
		raw = raw[start+7:]
		if end := strings.Index(raw, "```"); end != -1 {
			raw = raw[:end]
		}
	} else if start := strings.Index(raw, "```"); start != -1 {
		raw = raw[start+3:]
		if end := strings.Index(raw, "```"); end != -1 {
			raw = raw[:end]
		}
	}

	objStart := strings.Index(raw, "{")
	arrStart := strings.Index(raw, "[")
	start, closer := objStart, "}"
	if objStart == -1 || (arrStart != -1 && arrStart < objStart) {
		start, closer = arrStart, "]"
	}
	if start == -1 {
		return ""
	}

	end := strings.LastIndex(raw, closer)
	if end == -1 || end < start {
		return ""
	}

	candidate := raw[start : end+1]
	if json.Valid([]byte(candidate)) {
		return candidate
	}
	return ""
}

// decodeInto extracts and unmarshals the JSON payload of a model reply.
func decodeInto(raw string, out any) error {
	clean := extractJSON(raw)
	if clean == "" {
		return fmt.Errorf("no valid JSON in model response")
	}
	if err := json.Unmarshal([]byte(clean), out); err != nil {
		return fmt.Errorf("failed to parse model JSON: %w", err)
	}
	return nil
}

// GenerateSyllabus drafts a weekly syllabus for a course. Returns an
// empty slice on any failure.
func (c *Client) GenerateSyllabus(ctx context.Context, title, overview string, totalWeeks int, courseType model.CourseType) []model.WeeklyModule {
	prompt := fmt.Sprintf(`Create a syllabus for a course titled %q.
Overview: %q.
Course Type: %q.
Total Weeks: %d.

Return a strictly valid JSON array where each object has:
- week (number)
- title (string)
- description (string)
- hasAssignment (boolean, suggested based on topic)
- hasDiscussion (boolean, suggested based on topic)
- hasExam (boolean, true only for mid-term or final)`,
		title, overview, courseType, totalWeeks)

	schema := &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"week":          {Type: genai.TypeInteger},
				"title":         {Type: genai.TypeString},
				"description":   {Type: genai.TypeString},
				"hasAssignment": {Type: genai.TypeBoolean},
				"hasDiscussion": {Type: genai.TypeBoolean},
				"hasExam":       {Type: genai.TypeBoolean},
			},
		},
	}

	raw, err := c.generateJSON(ctx, prompt, schema)
	if err != nil {
		log.Printf("[WARN] Syllabus generation failed: %v", err)
		return []model.WeeklyModule{}
	}

	var weeks []model.WeeklyModule
	if err := decodeInto(raw, &weeks); err != nil {
		log.Printf("[WARN] Syllabus generation returned bad JSON: %v", err)
		return []model.WeeklyModule{}
	}
	return weeks
}

// GenerateStudyMaterial writes markdown lecture content for one week.
// Returns "" on any failure.
func (c *Client) GenerateStudyMaterial(ctx context.Context, courseTitle, weekTitle, weekDescription string) string {
	prompt := fmt.Sprintf(`Write comprehensive educational "textbook" style lecture content for:
Course: %s
Week Topic: %s
Context: %s

Format using Markdown. Include headers, bullet points, and clear explanations suitable for students.`,
		courseTitle, weekTitle, weekDescription)

	raw, err := c.generateJSON(ctx, prompt, nil)
	if err != nil {
		log.Printf("[WARN] Study material generation failed: %v", err)
		return ""
	}
	return raw
}

// ActivityDetails is the generated assignment and discussion content for
// one weekly module.
type ActivityDetails struct {
	AssignmentTitle       string `json:"assignmentTitle"`
	AssignmentDescription string `json:"assignmentDescription"`
	DiscussionTopic       string `json:"discussionTopic"`
	DiscussionDescription string `json:"discussionDescription"`
}

// GenerateActivityDetails drafts an assignment and a discussion topic
// from a week's study material. Returns the zero value on any failure.
func (c *Client) GenerateActivityDetails(ctx context.Context, courseTitle, weekTitle, material string) ActivityDetails {
	prompt := fmt.Sprintf(`Based on the study material for %q in the course %q, create:
1. A creative assignment title and short instruction.
2. A thought-provoking discussion topic and description.

Material Snippet: %s`,
		weekTitle, courseTitle, truncate(material, 3000))

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"assignmentTitle":       {Type: genai.TypeString},
			"assignmentDescription": {Type: genai.TypeString},
			"discussionTopic":       {Type: genai.TypeString},
			"discussionDescription": {Type: genai.TypeString},
		},
	}

	raw, err := c.generateJSON(ctx, prompt, schema)
	if err != nil {
		log.Printf("[WARN] Activity generation failed: %v", err)
		return ActivityDetails{}
	}

	var out ActivityDetails
	if err := decodeInto(raw, &out); err != nil {
		log.Printf("[WARN] Activity generation returned bad JSON: %v", err)
		return ActivityDetails{}
	}
	return out
}

// GenerateQuiz creates count quiz questions from study material. Freshly
// minted UUIDs replace whatever ids the model invents. Returns an empty
// slice on any failure.
func (c *Client) GenerateQuiz(ctx context.Context, material string, count int) []model.QuizQuestion {
	if count <= 0 {
		count = DefaultQuizCount
	}

	prompt := fmt.Sprintf(`Based on the following study material, create %d quiz questions.
Material: %s

Return a strictly valid JSON array of objects with:
- type ("MULTIPLE_CHOICE", "SHORT_ANSWER", or "ESSAY")
- question (string)
- options (array of strings, only for MULTIPLE_CHOICE)
- correctAnswer (string, the correct answer or key points)`,
		count, truncate(material, 5000))

	schema := &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"type":          {Type: genai.TypeString, Enum: []string{"MULTIPLE_CHOICE", "SHORT_ANSWER", "ESSAY"}},
				"question":      {Type: genai.TypeString},
				"options":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"correctAnswer": {Type: genai.TypeString},
			},
		},
	}

	raw, err := c.generateJSON(ctx, prompt, schema)
	if err != nil {
		log.Printf("[WARN] Quiz generation failed: %v", err)
		return []model.QuizQuestion{}
	}

	var questions []model.QuizQuestion
	if err := decodeInto(raw, &questions); err != nil {
		log.Printf("[WARN] Quiz generation returned bad JSON: %v", err)
		return []model.QuizQuestion{}
	}
	for i := range questions {
		questions[i].ID = model.NewID()
	}
	return questions
}

// GradeResult is the outcome of one auto-grading call.
type GradeResult struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// AutoGrade scores a student answer against the reference context. On
// any failure it returns a zero score with a non-empty failure message;
// it never raises. The model is asked for a score within [0, maxScore]
// but the returned value is not clamped here; that is the caller's
// responsibility.
func (c *Client) AutoGrade(ctx context.Context, question, studentAnswer, referenceContext string, maxScore int) GradeResult {
	prompt := fmt.Sprintf(`Act as a strict but fair professor. Grade the following student submission.
Question: %q
Correct Answer/Context: %q
Student Answer: %q
Max Score: %d

Return JSON:
{
  "score": number (0 to %d),
  "feedback": string (constructive feedback for the student)
}`,
		question, referenceContext, studentAnswer, maxScore, maxScore)

	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"score":    {Type: genai.TypeNumber},
			"feedback": {Type: genai.TypeString},
		},
	}

	raw, err := c.generateJSON(ctx, prompt, schema)
	if err != nil {
		log.Printf("[WARN] Auto-grading failed: %v", err)
		return GradeResult{Score: 0, Feedback: "Automatic grading failed. Please grade manually."}
	}

	var out GradeResult
	if err := decodeInto(raw, &out); err != nil {
		log.Printf("[WARN] Auto-grading returned bad JSON: %v", err)
		return GradeResult{Score: 0, Feedback: "Automatic grading failed. Please grade manually."}
	}
	if out.Feedback == "" {
		out.Feedback = "No feedback returned."
	}
	return out
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "... (truncated)"
}
