package patch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringDecoding(t *testing.T) {
	type body struct {
		Image String `json:"image"`
	}

	tests := []struct {
		name      string
		payload   string
		wantSet   bool
		wantValue *string
	}{
		{name: "omitted", payload: `{}`, wantSet: false},
		{name: "explicit null", payload: `{"image":null}`, wantSet: true, wantValue: nil},
		{name: "value", payload: `{"image":"https://img.example/x.png"}`, wantSet: true, wantValue: ptr("https://img.example/x.png")},
		{name: "empty string is a value", payload: `{"image":""}`, wantSet: true, wantValue: ptr("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b body
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &b))
			require.Equal(t, tt.wantSet, b.Image.Set)
			require.Equal(t, tt.wantValue, b.Image.Value)
		})
	}
}

func TestStringRejectsNonString(t *testing.T) {
	var s String
	require.Error(t, json.Unmarshal([]byte(`42`), &s))
}

func ptr(s string) *string { return &s }
