package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestValidate_ExtractedProfile(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"empty object", `{}`, false},
		{"full shape", `{"personalInfo": {"name": "Jane", "location": {"city": "Pune"}}, "experience": [{"jobTitle": "Dev"}], "education": [], "projects": null, "skills": ["Go", {"name": "SQL"}]}`, false},
		{"numeric phone", `{"personalInfo": {"phone": 5551234}}`, false},
		{"experience is a string", `{"experience": "Software Engineer at Acme"}`, false},
		{"skills is an object", `{"skills": {"name": "Go"}}`, false},
		{"skills is a string", `{"skills": "React, Python"}`, false},
		{"experience is a number", `{"experience": 3}`, true},
		{"projects is a boolean", `{"projects": true}`, true},
		{"personalInfo is a list", `{"personalInfo": ["Jane"]}`, true},
		{"skill entry is a number", `{"skills": [42]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(ExtractedProfile, decode(t, tt.doc))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.NotEmpty(t, ve.Errors)
			assert.Contains(t, err.Error(), ExtractedProfile)
		})
	}
}

func TestValidate_ApplicationAutofill(t *testing.T) {
	assert.NoError(t, ValidateJSONString(ApplicationAutofill, `{"name": "Jane", "coverLetter": "Dear team"}`))
	assert.Error(t, ValidateJSONString(ApplicationAutofill, `{"name": ["Jane"]}`))
	assert.Error(t, ValidateJSONString(ApplicationAutofill, `[1, 2]`))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("missing.schema.json", map[string]any{})
	require.Error(t, err)
	var le *SchemaLoadError
	assert.ErrorAs(t, err, &le)
}
