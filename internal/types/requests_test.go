//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfileRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid merge", `{"profileData": {"skills": []}, "mergeOption": "merge"}`, false},
		{"default option", `{"profileData": {}}`, false},
		{"missing profileData", `{"mergeOption": "merge"}`, true},
		{"null profileData", `{"profileData": null}`, true},
		{"invalid option", `{"profileData": {}, "mergeOption": "append"}`, true},
		{"invalid section option", `{"profileData": {}, "sectionOptions": {"skills": "upsert"}}`, true},
		{"valid section option", `{"profileData": {}, "sectionOptions": {"skills": "merge"}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateProfileRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateProfileRequest_Policy(t *testing.T) {
	assert.Equal(t, PolicyReplace, (&UpdateProfileRequest{}).Policy())
	assert.Equal(t, PolicyMerge, (&UpdateProfileRequest{MergeOption: "merge"}).Policy())
}

func TestAddSkillRequest_Validate(t *testing.T) {
	assert.NoError(t, (&AddSkillRequest{Name: "Go"}).Validate())
	assert.Error(t, (&AddSkillRequest{}).Validate())
}

func TestUpdateInfoRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"empty body", `{}`, false},
		{"all fields", `{"name": "Jane", "phone": "555", "bio": "", "location": {"city": "Oslo"}}`, false},
		{"blank name", `{"name": "  "}`, true},
		{"long name", `{"name": "` + strings.Repeat("x", 101) + `"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateInfoRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
