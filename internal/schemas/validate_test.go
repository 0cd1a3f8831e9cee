package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDimensionResponse_Valid(t *testing.T) {
	doc := `{"score": 82, "rationale": "Strong overlap", "evidence": ["Go"], "gaps": []}`
	assert.NoError(t, ValidateDimensionResponse(doc))
}

func TestValidateDimensionResponse_MinimalValid(t *testing.T) {
	doc := `{"score": 0, "rationale": ""}`
	assert.NoError(t, ValidateDimensionResponse(doc))
}

func TestValidateDimensionResponse_MissingScore(t *testing.T) {
	doc := `{"rationale": "no score provided"}`

	err := ValidateDimensionResponse(doc)
	require.Error(t, err)

	ve, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.NotEmpty(t, ve.Errors)
}

func TestValidateDimensionResponse_ScoreOutOfRange(t *testing.T) {
	doc := `{"score": 140, "rationale": "too enthusiastic"}`
	assert.Error(t, ValidateDimensionResponse(doc))
}

func TestValidateDimensionResponse_WrongScoreType(t *testing.T) {
	doc := `{"score": "eighty", "rationale": "stringly typed"}`
	assert.Error(t, ValidateDimensionResponse(doc))
}

func TestValidateDimensionResponse_WrongEvidenceType(t *testing.T) {
	doc := `{"score": 50, "rationale": "ok", "evidence": "not-an-array"}`
	assert.Error(t, ValidateDimensionResponse(doc))
}

func TestValidateDimensionResponse_NotJSON(t *testing.T) {
	assert.Error(t, ValidateDimensionResponse("I am not JSON"))
}
