package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeValue(t *testing.T) {
	tests := []struct {
		grade   *Grade
		want    float64
		numeric bool
	}{
		{grade: nil},
		{grade: NumericGrade(92), want: 92, numeric: true},
		{grade: TextGrade(" 87.5% "), want: 87.5, numeric: true},
		{grade: TextGrade("Pass")},
		{grade: TextGrade("")},
		{grade: TextGrade("NaN")},
		{grade: TextGrade("Infinity")},
		{grade: TextGrade("-Inf%")},
	}

	for _, tt := range tests {
		got, ok := tt.grade.Value()
		assert.Equal(t, tt.numeric, ok, "%+v", tt.grade)
		assert.Equal(t, tt.want, got, "%+v", tt.grade)
	}
}

func TestGradeJSON(t *testing.T) {
	var cert Certificate
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","grade":91.5}`), &cert))
	require.NotNil(t, cert.Grade)
	assert.True(t, cert.Grade.Number)

	out, err := json.Marshal(cert.Grade)
	require.NoError(t, err)
	assert.Equal(t, `91.5`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`{"id":"b","grade":"Pass"}`), &cert))
	assert.Equal(t, TextGrade("Pass"), cert.Grade)
}
