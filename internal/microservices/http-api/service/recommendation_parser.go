package service

import (
	"strings"

	"agriconnect/internal/microservices/http-api/dto"
)

type parseSection int

const (
	sectionNone parseSection = iota
	sectionDescription
	sectionTreatments
	sectionPrevention
)

// parseRecommendation walks generative treatment text line by line,
// switching sections on recognized headers. Headers match by
// case-insensitive substring. "organic treatments:" and "chemical
// options:" are subsection headers inside treatments: they are consumed
// without a section change. Description lines concatenate with a trailing
// space; treatment and prevention sections keep only numbered (1.-9.) or
// dashed list items.
func parseRecommendation(text string) *dto.DiseaseInfoPayload {
	var description strings.Builder
	treatments := []string{}
	prevention := []string{}

	section := sectionNone
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case strings.Contains(lower, "disease information:"):
			section = sectionDescription
			continue
		case strings.Contains(lower, "treatment recommendations:") || strings.Contains(lower, "treatment:"):
			section = sectionTreatments
			continue
		case strings.Contains(lower, "prevention measures:") || strings.Contains(lower, "prevention:"):
			section = sectionPrevention
			continue
		case strings.Contains(lower, "organic treatments:") || strings.Contains(lower, "chemical options:"):
			continue
		}

		switch section {
		case sectionDescription:
			description.WriteString(line)
			description.WriteString(" ")
		case sectionTreatments:
			if isListItem(line) {
				treatments = append(treatments, line)
			}
		case sectionPrevention:
			if isListItem(line) {
				prevention = append(prevention, line)
			}
		}
	}

	desc := strings.TrimSpace(description.String())
	if desc == "" {
		desc = defaultDiseaseDescription
	}

	return &dto.DiseaseInfoPayload{
		Description: desc,
		Treatments:  treatments,
		Prevention:  prevention,
	}
}

// isListItem reports whether a line starts with "1."-"9." or "-".
func isListItem(line string) bool {
	if strings.HasPrefix(line, "-") {
		return true
	}
	if len(line) >= 2 && line[0] >= '1' && line[0] <= '9' && line[1] == '.' {
		return true
	}
	return false
}
