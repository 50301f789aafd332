// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
type ExtractionSchema struct {
	Name         string        // Schema name (e.g., "ApplicationAutofill")
	Description  string        // Preamble describing the extraction task
	Fields       []SchemaField // Expected output fields
	Instructions []string      // Extra rules appended after the default ones
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint rendered verbatim, e.g. "\"string\""
	Description string // Description for the LLM
	Required    bool
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "\"string\""
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Use an empty string for any field that is not present in the text.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n")
	for _, rule := range schema.Instructions {
		sb.WriteString("- ")
		sb.WriteString(rule)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString("Resume text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// ApplicationAutofillSchema returns the schema used to prefill a job
// application form from a resume. The cover letter is always generated.
func ApplicationAutofillSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "ApplicationAutofill",
		Description: `You are an assistant that fills in job application forms from resumes.
Read the OCR text of a resume and extract the applicant's contact details.`,
		Fields: []SchemaField{
			{Name: "name", Description: "Full name of the applicant", Required: true},
			{Name: "email", Description: "Email address"},
			{Name: "phone", Description: "Phone number as written"},
			{Name: "address", Description: "Postal address or city and country"},
			{Name: "coverLetter", Description: "A short professional cover letter (3 short paragraphs) based on the resume", Required: true},
		},
		Instructions: []string{
			"Contact details must be copied from the text, never invented.",
			"The coverLetter is the only field you write yourself; base it on the experience and skills in the resume.",
		},
	}
}
