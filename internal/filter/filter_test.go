package filter

import (
	"reflect"
	"testing"

	"survey-tool/internal/models"
)

func iterationWithFacets(facets ...string) models.AnswerIteration {
	it := models.AnswerIteration{}
	for i, f := range facets {
		it.Questions = append(it.Questions, models.AnswerQuestion{
			ID:          "q" + string(rune('a'+i)),
			DetailLevel: f,
		})
	}
	return it
}

func facetsOf(questions []models.AnswerQuestion) []string {
	out := make([]string, 0, len(questions))
	for _, q := range questions {
		out = append(out, q.DetailLevel)
	}
	return out
}

func TestVisibleQuestionsExactMode(t *testing.T) {
	iteration := iterationWithFacets("1", "2", "3", "3", "4")
	assessment := &models.Assessment{DetailLevel: "3"}

	visible := VisibleQuestions(&iteration, assessment, Exact)

	if len(visible) != 2 {
		t.Fatalf("Expected exactly the two facet-3 questions, got %d", len(visible))
	}
	if got := facetsOf(visible); !reflect.DeepEqual(got, []string{"3", "3"}) {
		t.Errorf("Expected facets [3 3] in original order, got %v", got)
	}
}

func TestVisibleQuestionsThresholdMode(t *testing.T) {
	iteration := iterationWithFacets("1", "2", "3")
	assessment := &models.Assessment{DetailLevel: "2"}

	visible := VisibleQuestions(&iteration, assessment, Threshold)

	if got := facetsOf(visible); !reflect.DeepEqual(got, []string{"1", "2"}) {
		t.Errorf("Expected facets [1 2] in original order, got %v", got)
	}
}

func TestDetailLevelCoercion(t *testing.T) {
	testCases := []struct {
		name            string
		questionFacet   string
		assessmentLevel string
		mode            Mode
		visible         bool
	}{
		{"empty level defaults to 2 threshold", "2", "", Threshold, true},
		{"empty level defaults to 2 exact", "2", "", Exact, true},
		{"malformed level defaults to 2", "3", "high", Threshold, false},
		{"non-numeric facet never passes threshold", "n/a", "5", Threshold, false},
		{"non-numeric facet misses numeric level in exact mode", "n/a", "2", Exact, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			iteration := iterationWithFacets(tc.questionFacet)
			assessment := &models.Assessment{DetailLevel: tc.assessmentLevel}
			got := len(VisibleQuestions(&iteration, assessment, tc.mode)) == 1
			if got != tc.visible {
				t.Errorf("Expected visible=%v, got %v", tc.visible, got)
			}
		})
	}
}

func TestVisibleQuestionsIdempotent(t *testing.T) {
	iteration := iterationWithFacets("1", "3", "2", "5")
	assessment := &models.Assessment{DetailLevel: "3"}

	first := VisibleQuestions(&iteration, assessment, Threshold)
	second := VisibleQuestions(&iteration, assessment, Threshold)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical sequences, got %v then %v", first, second)
	}
}

func TestVisibleIterationsRepeatable(t *testing.T) {
	category := &models.AnswerCategory{
		IsRepeatable: true,
		Iterations: []models.AnswerIteration{
			{Name: ""}, {Name: "Site A"}, {Name: ""}, {Name: "Site B"}, {Name: ""}, {Name: ""},
		},
	}

	visible := VisibleIterations(category)

	if len(visible) != 2 {
		t.Fatalf("Expected 2 filled iterations, got %d", len(visible))
	}
	if visible[0].Name != "Site A" || visible[1].Name != "Site B" {
		t.Errorf("Expected [Site A, Site B] in slot order, got [%s, %s]", visible[0].Name, visible[1].Name)
	}
}

func TestVisibleIterationsNonRepeatable(t *testing.T) {
	category := &models.AnswerCategory{
		Iterations: []models.AnswerIteration{{Name: ""}},
	}

	if got := len(VisibleIterations(category)); got != 1 {
		t.Errorf("Expected the sole unnamed iteration to stay visible, got %d", got)
	}
}

func TestVisibleCategoriesFirstIterationRule(t *testing.T) {
	assessment := &models.Assessment{
		DetailLevel: "2",
		Answers: []models.AnswerCategory{
			{ID: "deep", Iterations: []models.AnswerIteration{iterationWithFacets("4", "5")}},
			{ID: "shallow", Iterations: []models.AnswerIteration{iterationWithFacets("1")}},
			{ID: "empty", Iterations: []models.AnswerIteration{}},
		},
	}

	visible := VisibleCategories(assessment, Threshold)

	if len(visible) != 1 || visible[0].ID != "shallow" {
		t.Fatalf("Expected only the category with a visible first-iteration question, got %+v", visible)
	}
}
