package anki

import (
	"maps"
	"testing"
)

func TestMapFields(t *testing.T) {
	testCases := []struct {
		name     string
		fields   []string
		flds     string
		expected map[string]string
	}{
		{
			name:     "Trailing separator keeps trailing empty field",
			fields:   []string{"f0", "f1", "f2"},
			flds:     "a\x1fb\x1f",
			expected: map[string]string{"f0": "a", "f1": "b", "f2": ""},
		},
		{
			name:     "Extra values beyond the model are dropped",
			fields:   []string{"f0", "f1", "f2"},
			flds:     "a\x1fb\x1fc\x1fd",
			expected: map[string]string{"f0": "a", "f1": "b", "f2": "c"},
		},
		{
			name:     "Exact match",
			fields:   []string{"German", "English"},
			flds:     "Hund\x1fdog",
			expected: map[string]string{"German": "Hund", "English": "dog"},
		},
		{
			name:     "Short blob pads missing fields with empty strings",
			fields:   []string{"f0", "f1", "f2"},
			flds:     "a",
			expected: map[string]string{"f0": "a", "f1": "", "f2": ""},
		},
		{
			name:     "Empty blob",
			fields:   []string{"f0", "f1"},
			flds:     "",
			expected: map[string]string{"f0": "", "f1": ""},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := mapFields(tc.fields, tc.flds)
			if !maps.Equal(got, tc.expected) {
				t.Errorf("mapFields(%q) = %v, want %v", tc.flds, got, tc.expected)
			}
		})
	}
}
