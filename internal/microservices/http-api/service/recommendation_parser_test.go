package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRecommendation_Sections(t *testing.T) {
	text := "Disease Information:\nLeaf spot.\nTreatment Recommendations:\n1. Remove leaves\n- Apply fungicide\nPrevention Measures:\n1. Rotate crops\n"

	payload := parseRecommendation(text)

	assert.Equal(t, "Leaf spot.", payload.Description)
	assert.Equal(t, []string{"1. Remove leaves", "- Apply fungicide"}, payload.Treatments)
	assert.Equal(t, []string{"1. Rotate crops"}, payload.Prevention)
}

func TestParseRecommendation_MultiLineDescription(t *testing.T) {
	text := "Disease Information:\nA fungal disease.\nIt spreads in humid weather.\nTreatment:\n1. Prune affected areas\n"

	payload := parseRecommendation(text)

	assert.Equal(t, "A fungal disease. It spreads in humid weather.", payload.Description)
	assert.Equal(t, []string{"1. Prune affected areas"}, payload.Treatments)
}

func TestParseRecommendation_SubsectionHeadersStayInTreatments(t *testing.T) {
	text := "Treatment Recommendations:\n1. First step\nOrganic Treatments:\n2. Neem oil\nChemical Options:\n3. Copper spray\n"

	payload := parseRecommendation(text)

	// Subsection headers are consumed without changing section, so the
	// items under them still land in treatments.
	assert.Equal(t, []string{"1. First step", "2. Neem oil", "3. Copper spray"}, payload.Treatments)
	assert.Empty(t, payload.Prevention)
}

func TestParseRecommendation_DiscardsNonListLines(t *testing.T) {
	text := "Treatment Recommendations:\nThese are some options.\n1. Remove leaves\nAnd also consider:\n- Apply fungicide\n"

	payload := parseRecommendation(text)

	assert.Equal(t, []string{"1. Remove leaves", "- Apply fungicide"}, payload.Treatments)
}

func TestParseRecommendation_CaseInsensitiveHeaders(t *testing.T) {
	text := "DISEASE INFORMATION:\nBlight.\nPREVENTION MEASURES:\n- Crop rotation\n"

	payload := parseRecommendation(text)

	assert.Equal(t, "Blight.", payload.Description)
	assert.Equal(t, []string{"- Crop rotation"}, payload.Prevention)
}

func TestParseRecommendation_EmptyInputUsesDefaultDescription(t *testing.T) {
	payload := parseRecommendation("")

	assert.Equal(t, defaultDiseaseDescription, payload.Description)
	assert.Empty(t, payload.Treatments)
	assert.Empty(t, payload.Prevention)
}

func TestParseRecommendation_BlankLinesSkipped(t *testing.T) {
	text := "Disease Information:\n\nRust.\n\nTreatment Recommendations:\n\n1. Spray\n\n"

	payload := parseRecommendation(text)

	assert.Equal(t, "Rust.", payload.Description)
	assert.Equal(t, []string{"1. Spray"}, payload.Treatments)
}

func TestIsListItem(t *testing.T) {
	assert.True(t, isListItem("1. Remove leaves"))
	assert.True(t, isListItem("9. Last item"))
	assert.True(t, isListItem("- Apply fungicide"))
	assert.False(t, isListItem("Remove leaves"))
	assert.False(t, isListItem("10 items to do"))
	assert.False(t, isListItem("1"))
}
