package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemPromptListsEveryFieldAndDomain(t *testing.T) {
	prompt := SystemPrompt(DefaultSchema())

	for _, rule := range DefaultSchema() {
		assert.Contains(t, prompt, `"`+rule.Name+`"`)
	}
	assert.Contains(t, prompt, "'DNI' or 'Pasaporte'")
	assert.Contains(t, prompt, "'M' or 'F' or 'O'")
	assert.Contains(t, prompt, "YYYY-MM-DD")
	assert.Contains(t, prompt, "Do not include any additional text")

	// The JSON template must be well-formed enough to not confuse the model:
	// one key per line, no trailing comma.
	assert.False(t, strings.Contains(prompt, ",\n}"))
}
