package ai

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is missing")
}

// unreachableClient points the Gemini client at a port nothing listens
// on, so every generation call fails at request time. Construction still
// succeeds; the degraded return values are what these tests pin down.
func unreachableClient(t *testing.T) *Client {
	t.Helper()
	c, err := NewClient(context.Background(), "test-key", option.WithEndpoint("localhost:1"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestDegradationOnUnreachableService(t *testing.T) {
	c := unreachableClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	t.Run("GenerateQuiz returns empty list", func(t *testing.T) {
		questions := c.GenerateQuiz(ctx, "some study material", 3)
		assert.Empty(t, questions)
	})

	t.Run("AutoGrade returns zero score with manual-grading feedback", func(t *testing.T) {
		result := c.AutoGrade(ctx, "What is a mutex?", "a lock", "reference", 10)
		assert.Equal(t, 0, result.Score)
		assert.Equal(t, "Automatic grading failed. Please grade manually.", result.Feedback)
	})

	t.Run("GenerateSyllabus returns empty list", func(t *testing.T) {
		weeks := c.GenerateSyllabus(ctx, "Databases", "intro course", 4, "VIDEO")
		assert.Empty(t, weeks)
	})

	t.Run("GenerateStudyMaterial returns empty string", func(t *testing.T) {
		assert.Empty(t, c.GenerateStudyMaterial(ctx, "Databases", "Week 1", "basics"))
	})

	t.Run("GenerateActivityDetails returns zero value", func(t *testing.T) {
		assert.Equal(t, ActivityDetails{}, c.GenerateActivityDetails(ctx, "Databases", "Week 1", "material"))
	})
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "bare object",
			raw:  `{"score": 8}`,
			want: `{"score": 8}`,
		},
		{
			name: "bare array",
			raw:  `[{"week": 1}]`,
			want: `[{"week": 1}]`,
		},
		{
			name: "json fence",
			raw:  "Here you go:\n```json\n{\"score\": 8}\n```\nHope that helps!",
			want: "\n{\"score\": 8}\n",
		},
		{
			name: "plain fence",
			raw:  "```\n[1, 2, 3]\n```",
			want: "\n[1, 2, 3]\n",
		},
		{
			name: "surrounding prose",
			raw:  `Sure! The result is {"feedback": "good"} as requested.`,
			want: `{"feedback": "good"}`,
		},
		{
			name: "array before object picks the array",
			raw:  `[{"a": 1}]`,
			want: `[{"a": 1}]`,
		},
		{
			name: "no json at all",
			raw:  "I cannot answer that.",
			want: "",
		},
		{
			name: "unterminated object",
			raw:  `{"score": 8`,
			want: "",
		},
		{
			name: "invalid json between braces",
			raw:  `{score: 8}`,
			want: "",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSON(tt.raw)
			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			assert.JSONEq(t, tt.want, got)
		})
	}
}

func TestDecodeInto(t *testing.T) {
	t.Run("decodes fenced payload", func(t *testing.T) {
		var out GradeResult
		raw := "```json\n{\"score\": 7, \"feedback\": \"solid work\"}\n```"
		require.NoError(t, decodeInto(raw, &out))
		assert.Equal(t, 7, out.Score)
		assert.Equal(t, "solid work", out.Feedback)
	})

	t.Run("rejects prose-only reply", func(t *testing.T) {
		var out GradeResult
		err := decodeInto("I graded it an 8 out of 10.", &out)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no valid JSON")
	})

	t.Run("rejects type mismatch", func(t *testing.T) {
		var out GradeResult
		err := decodeInto(`{"score": "seven"}`, &out)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse model JSON")
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 100))
	assert.Equal(t, "short", truncate("short", 5))

	long := strings.Repeat("x", 50)
	got := truncate(long, 10)
	assert.True(t, strings.HasPrefix(got, "xxxxxxxxxx"))
	assert.True(t, strings.HasSuffix(got, "... (truncated)"))
	assert.Len(t, got, 10+len("... (truncated)"))
}
