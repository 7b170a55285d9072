package extract

import (
	"fmt"
	"strings"
)

// SystemPrompt renders the fixed extraction instruction for a schema. The
// field list and allowed value domains are spelled out so the model returns a
// literal JSON object instead of prose.
func SystemPrompt(schema Schema) string {
	var b strings.Builder
	b.WriteString("You are a form field extractor. Extract specific information from the provided text.\n")
	b.WriteString("Return only a JSON object with the following keys and format the data accordingly:\n{\n")
	for i, rule := range schema {
		b.WriteString(fmt.Sprintf("    %q: %q", rule.Name, rule.Hint))
		if i < len(schema)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n\nFollow these guidelines:\n")
	b.WriteString("- Split full names into firstname and lastname\n")
	for _, rule := range schema {
		switch rule.Kind {
		case KindDate:
			b.WriteString(fmt.Sprintf("- Format %s as YYYY-MM-DD\n", rule.Name))
		case KindEnum:
			b.WriteString(fmt.Sprintf("- For %s, only use %s\n", rule.Name, quoteJoin(rule.Allowed)))
		case KindIdent:
			b.WriteString(fmt.Sprintf("- For %s, extract the alphanumeric identifier\n", rule.Name))
		}
	}
	b.WriteString("- Clean and standardize phone numbers\n")
	b.WriteString("- If a field is not found, leave it as an empty string\n")
	b.WriteString("- Do not include any additional text or explanation\n")
	return b.String()
}

func quoteJoin(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, " or ")
}
