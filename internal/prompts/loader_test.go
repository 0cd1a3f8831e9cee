package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownPrompt(t *testing.T) {
	prompt, err := Get("evaluation.json", "technical_skills")

	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.RequiredSkills}}")
	assert.Contains(t, prompt, `"score"`)
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("evaluation.json", "nonexistent")
	assert.Error(t, err)
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "technical_skills")
	assert.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("evaluation.json", "nonexistent")
	})
}

func TestFormat_ReplacesPlaceholders(t *testing.T) {
	out := Format("Role: {{.Role}} at {{.Company}}", map[string]string{
		"Role":    "Engineer",
		"Company": "Acme",
	})

	assert.Equal(t, "Role: Engineer at Acme", out)
}

func TestFormat_LeavesUnknownPlaceholders(t *testing.T) {
	out := Format("Hello {{.Name}}", map[string]string{"Other": "x"})
	assert.Equal(t, "Hello {{.Name}}", out)
}

func TestAllDimensionPromptsPresent(t *testing.T) {
	for _, key := range []string{
		"technical_skills",
		"experience_relevance",
		"education_certifications",
		"cultural_fit",
		"growth_potential",
		"corrective-retry",
	} {
		prompt, err := Get("evaluation.json", key)
		require.NoError(t, err, "prompt %s", key)
		assert.False(t, strings.TrimSpace(prompt) == "", "prompt %s empty", key)
	}
}
