package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allowed = []string{"Networking_Tools", "Process_Management"}

func validRecord() map[string]any {
	return map[string]any{
		"name":        "ping",
		"category":    "Networking_Tools",
		"description": "send ICMP ECHO_REQUEST to network hosts",
		"usage":       "ping [OPTION]... HOST",
	}
}

func fields(issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, is := range issues {
		out = append(out, is.Field)
	}
	return out
}

func TestValidateValid(t *testing.T) {
	v := NewValidator(true, allowed)
	issues := v.Validate(validRecord())
	assert.Empty(t, issues)
	assert.False(t, HasErrors(issues))
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any)
		want   []string
	}{
		{
			name:   "missing name",
			mutate: func(r map[string]any) { delete(r, "name") },
			want:   []string{"name"},
		},
		{
			name: "command key instead of name",
			mutate: func(r map[string]any) {
				delete(r, "name")
				r["command"] = "ping"
			},
		},
		{
			name:   "blank description",
			mutate: func(r map[string]any) { r["description"] = "   " },
			want:   []string{"description"},
		},
		{
			name: "syntax instead of usage",
			mutate: func(r map[string]any) {
				delete(r, "usage")
				r["syntax"] = "ping HOST"
			},
		},
		{
			name:   "missing usage",
			mutate: func(r map[string]any) { delete(r, "usage") },
			want:   []string{"usage"},
		},
		{
			name:   "missing category",
			mutate: func(r map[string]any) { delete(r, "category") },
			want:   []string{"category"},
		},
		{
			name:   "category outside allow-list",
			mutate: func(r map[string]any) { r["category"] = "Misc" },
			want:   []string{"category"},
		},
		{
			name:   "non-string name",
			mutate: func(r map[string]any) { r["name"] = 42 },
			want:   []string{"name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(r)
			issues := NewValidator(true, allowed).Validate(r)
			if len(tt.want) == 0 {
				assert.Empty(t, issues)
				return
			}
			assert.Equal(t, tt.want, fields(issues))
			assert.True(t, HasErrors(issues))
		})
	}
}

func TestValidateLenientCategory(t *testing.T) {
	r := validRecord()
	r["category"] = "Misc"
	assert.Empty(t, NewValidator(false, allowed).Validate(r))
}

func TestValidateSoftShapeChecks(t *testing.T) {
	r := validRecord()
	r["options"] = "-v"
	r["examples"] = map[string]any{"list": "ls"}

	issues := NewValidator(true, allowed).Validate(r)
	require.Len(t, issues, 2)
	for _, is := range issues {
		assert.Equal(t, LevelWarning, is.Level)
	}
	assert.False(t, HasErrors(issues))
}

func TestParseRecord(t *testing.T) {
	record, err := ParseRecord([]byte("name: ls\noptions:\n  - -l\n"))
	require.NoError(t, err)
	assert.Equal(t, "ls", RecordName(record))
	assert.IsType(t, []any{}, record["options"])

	_, err = ParseRecord([]byte("- name: ls\n"))
	assert.ErrorIs(t, err, ErrNotMapping)

	_, err = ParseRecord([]byte(""))
	assert.ErrorIs(t, err, ErrNotMapping)

	_, err = ParseRecord([]byte("name: [broken\n"))
	assert.Error(t, err)
}

func TestIssueLevelText(t *testing.T) {
	b, err := LevelWarning.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "warn", string(b))
}
