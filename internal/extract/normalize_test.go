package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFillsEveryRequiredKey(t *testing.T) {
	schema := DefaultSchema()

	out := schema.Normalize(map[string]string{"firstname": "Jane"})

	require.Len(t, out, len(schema))
	for _, rule := range schema {
		_, ok := out[rule.Name]
		assert.True(t, ok, "missing key %s", rule.Name)
	}
	assert.Equal(t, "Jane", out["firstname"])
	assert.Equal(t, "", out["lastname"])
}

func TestNormalizeIsTotalOnNilInput(t *testing.T) {
	schema := DefaultSchema()

	out := schema.Normalize(nil)

	require.Len(t, out, len(schema))
	for k, v := range out {
		assert.Equal(t, "", v, "key %s", k)
	}
}

func TestNormalizeDropsExtraneousKeys(t *testing.T) {
	schema := DefaultSchema()

	out := schema.Normalize(map[string]string{
		"firstname":  "Jane",
		"confidence": "0.92",
		"notes":      "model chatter",
	})

	assert.Len(t, out, len(schema))
	assert.NotContains(t, out, "confidence")
	assert.NotContains(t, out, "notes")
}

func TestNormalizeBirthDate(t *testing.T) {
	schema := DefaultSchema()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"valid date unchanged", "1990-05-17", "1990-05-17"},
		{"wrong separator reset", "1990/05/17", ""},
		{"day-first reset", "17-05-1990", ""},
		{"month out of range reset", "1990-13-01", ""},
		{"impossible day reset", "1990-02-30", ""},
		{"free text reset", "mayo de 1990", ""},
		{"empty stays empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := schema.Normalize(map[string]string{"birth_date": tt.in})
			assert.Equal(t, tt.want, out["birth_date"])
		})
	}
}

func TestNormalizeEnums(t *testing.T) {
	schema := DefaultSchema()

	tests := []struct {
		field string
		in    string
		want  string
	}{
		{"gender", "M", "M"},
		{"gender", "F", "F"},
		{"gender", "O", "O"},
		{"gender", "male", ""},
		{"gender", "m", ""},
		{"document_type", "DNI", "DNI"},
		{"document_type", "Pasaporte", "Pasaporte"},
		{"document_type", "pasaporte", ""},
		{"document_type", "Cedula", ""},
	}
	for _, tt := range tests {
		t.Run(tt.field+"/"+tt.in, func(t *testing.T) {
			out := schema.Normalize(map[string]string{tt.field: tt.in})
			assert.Equal(t, tt.want, out[tt.field])
		})
	}
}

func TestNormalizeIdentifiers(t *testing.T) {
	schema := DefaultSchema()

	tests := []struct {
		name  string
		field string
		in    string
		want  string
	}{
		{"punctuation stripped, order kept", "document_number", "12.345.678-K", "12345678K"},
		{"spaces stripped", "document_number", "AB 12 34", "AB1234"},
		{"already clean", "document_number", "X1234567", "X1234567"},
		{"zip with dash", "zip_code", "28 013-B", "28013B"},
		{"empty stays empty", "zip_code", "", ""},
		{"only punctuation becomes empty", "zip_code", "--..", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := schema.Normalize(map[string]string{tt.field: tt.in})
			assert.Equal(t, tt.want, out[tt.field])
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	schema := DefaultSchema()

	out := schema.Normalize(map[string]string{"email": "jane@x.com"})
	assert.Equal(t, "jane@x.com", out["email"])

	out = schema.Normalize(map[string]string{"email": "janex.com"})
	assert.Equal(t, "", out["email"])
}

func TestEmptyHasEveryKeyBlank(t *testing.T) {
	schema := DefaultSchema()

	out := schema.Empty()

	require.Len(t, out, len(schema))
	for _, rule := range schema {
		assert.Equal(t, "", out[rule.Name])
	}
}
