// Package filter projects the full category/iteration/question lists of an
// assessment down to the subset visible at the current detail level. All
// functions are pure; callers recompute after every mutation of the detail
// level or the set of filled iteration slots instead of caching results.
package filter

import (
	"strconv"

	"survey-tool/internal/constants"
	"survey-tool/internal/models"
)

// Mode selects how a question facet is compared against the assessment's
// detail level.
type Mode int

const (
	// Threshold shows a question when its facet is <= the selected level.
	Threshold Mode = iota
	// Exact shows a question only when its facet equals the selected level.
	Exact
)

// ModeFor derives the filter mode from the questionnaire flavour.
func ModeFor(template *models.Questionnaire) Mode {
	if template.IsExactMode() {
		return Exact
	}
	return Threshold
}

// FacetNone is the coercion sentinel for non-numeric question facets. It
// compares equal only to itself in exact mode and never passes the threshold
// comparison.
const FacetNone = int(^uint32(0) >> 1)

// Facet coerces a raw detail-level facet to its integer value.
func Facet(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return FacetNone
	}
	return n
}

// level coerces the assessment's detail level, falling back to the default
// for empty or malformed values.
func level(assessment *models.Assessment) int {
	n, err := strconv.Atoi(assessment.DetailLevel)
	if err != nil {
		return constants.DefaultDetailLevel
	}
	return n
}

// visible is the single visibility predicate shared by all three projections.
func visible(facet string, detailLevel int, mode Mode) bool {
	f := Facet(facet)
	if mode == Exact {
		return f == detailLevel
	}
	if f == FacetNone {
		return false
	}
	return f <= detailLevel
}

// VisibleQuestions filters an iteration's questions by the visibility
// predicate, preserving order.
func VisibleQuestions(iteration *models.AnswerIteration, assessment *models.Assessment, mode Mode) []models.AnswerQuestion {
	if iteration == nil {
		return nil
	}
	detailLevel := level(assessment)
	out := make([]models.AnswerQuestion, 0, len(iteration.Questions))
	for _, q := range iteration.Questions {
		if visible(q.DetailLevel, detailLevel, mode) {
			out = append(out, q)
		}
	}
	return out
}

// VisibleIterations returns all iterations of a non-repeatable category, and
// only the filled (non-empty name) slots of a repeatable one, in array order.
func VisibleIterations(category *models.AnswerCategory) []models.AnswerIteration {
	if category == nil {
		return nil
	}
	if !category.IsRepeatable {
		return category.Iterations
	}
	out := make([]models.AnswerIteration, 0, len(category.Iterations))
	for _, it := range category.Iterations {
		if it.Name != "" {
			out = append(out, it)
		}
	}
	return out
}

// VisibleCategories returns, in template order, every category whose first
// iteration contains at least one visible question.
func VisibleCategories(assessment *models.Assessment, mode Mode) []models.AnswerCategory {
	detailLevel := level(assessment)
	out := make([]models.AnswerCategory, 0, len(assessment.Answers))
	for _, cat := range assessment.Answers {
		if len(cat.Iterations) == 0 {
			continue
		}
		for _, q := range cat.Iterations[0].Questions {
			if visible(q.DetailLevel, detailLevel, mode) {
				out = append(out, cat)
				break
			}
		}
	}
	return out
}
