// Package model defines the core domain models used throughout the application.
package model

import (
	"math"
	"strings"
)

// Unclassified is the label reported when no industry could be determined.
const Unclassified = "Unclassified"

// ClassificationInput is the text a classifier works from.
type ClassificationInput struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description"`
	// KnownIndustry is an optional label already attached to the company
	// (for example the industry column of an uploaded sheet). Only the LLM
	// classifier uses it, as an extra few-shot example.
	KnownIndustry string `json:"known_industry,omitempty"`
}

// Text joins the name and description into the string that gets matched.
func (in ClassificationInput) Text() string {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return in.Description
	}
	return name + " " + in.Description
}

// ClassificationResult is the outcome of classifying one input.
type ClassificationResult struct {
	Industry     string   `json:"predicted_industry"`
	Classifier   string   `json:"classifier,omitempty"`
	MatchedTerms []string `json:"matched_terms,omitempty"`
	Confidence   float64  `json:"confidence"`
}

// UnclassifiedResult returns the sentinel result with zero confidence.
func UnclassifiedResult(classifier string) ClassificationResult {
	return ClassificationResult{
		Industry:   Unclassified,
		Classifier: classifier,
		Confidence: 0,
	}
}

// IsUnclassified reports whether the result carries the sentinel label.
func (r ClassificationResult) IsUnclassified() bool {
	return r.Industry == Unclassified
}

// FewShotExample is an input/label pair used to steer an LLM classifier.
type FewShotExample struct {
	Input string `yaml:"input" json:"input"`
	Label string `yaml:"label" json:"label"`
}

// ClampConfidence bounds a score to [0,1]. NaN maps to 0.
func ClampConfidence(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
