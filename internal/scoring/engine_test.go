package scoring

import (
	"math"
	"testing"

	"survey-tool/internal/models"
)

func twoOptions() []models.Option {
	return []models.Option{
		{ID: "o1", Position: 1, Name: "No"},
		{ID: "o2", Position: 2, Name: "Yes"},
	}
}

// scoringFixture builds a two-option template: with a midpoint adjustment of
// 1, a high-relevance answer at position 2 scores 1 point and a low-relevance
// answer at position 1 scores 3.
func scoringFixture() (*models.Questionnaire, *models.Assessment) {
	template := &models.Questionnaire{
		ID:  "survey-1",
		Key: "generic",
		Categories: []models.Category{
			{
				ID: "cat",
				Questions: []models.Question{
					{ID: "qa", Name: "Uses automation", DetailLevel: "1", Options: twoOptions()},
					{ID: "qb", Name: "Manual rework", DetailLevel: "1", Options: twoOptions()},
				},
			},
		},
		ResultSets: []models.ResultSet{
			{
				ID:   "rs1",
				Name: "Methods",
				Results: []models.Result{
					{ID: "r1", Name: "Alpha", RelevantQuestions: []models.RelevantQuestion{{ID: "qa", Relevance: "high"}}},
					{ID: "r2", Name: "Beta", RelevantQuestions: []models.RelevantQuestion{{ID: "qb", Relevance: "low"}}},
					{ID: "r3", Name: "Gamma", RelevantQuestions: []models.RelevantQuestion{{ID: "qa", Relevance: "high"}}},
				},
			},
		},
	}
	assessment := &models.Assessment{
		DetailLevel: "2",
		Answers: []models.AnswerCategory{
			{
				ID: "cat",
				Iterations: []models.AnswerIteration{
					{Questions: []models.AnswerQuestion{
						{ID: "qa", Answer: "o2", DetailLevel: "1"},
						{ID: "qb", Answer: "o1", DetailLevel: "1"},
					}},
				},
			},
		},
	}
	return template, assessment
}

func TestFlattenAnswers(t *testing.T) {
	template, assessment := scoringFixture()
	engine := NewEngine(template)

	flattened, numberOfOptions := engine.FlattenAnswers(assessment)

	if numberOfOptions != 2 {
		t.Errorf("Expected 2 options on the widest question, got %d", numberOfOptions)
	}
	if len(flattened) != 2 {
		t.Fatalf("Expected 2 flattened answers, got %d", len(flattened))
	}
	if flattened[0].ID != "qa" || flattened[0].Position != 2 || flattened[0].AnswerName != "Yes" {
		t.Errorf("Unexpected first record: %+v", flattened[0])
	}
	if flattened[1].ID != "qb" || flattened[1].Position != 1 {
		t.Errorf("Unexpected second record: %+v", flattened[1])
	}
}

func TestFlattenAnswersDropsUnresolvedOption(t *testing.T) {
	template, assessment := scoringFixture()
	assessment.Answers[0].Iterations[0].Questions[0].Answer = "gone"
	engine := NewEngine(template)

	flattened, numberOfOptions := engine.FlattenAnswers(assessment)

	if len(flattened) != 1 || flattened[0].ID != "qb" {
		t.Fatalf("Expected only qb to survive, got %+v", flattened)
	}
	// The dead answer still widened the option count before being dropped.
	if numberOfOptions != 2 {
		t.Errorf("Expected option count 2, got %d", numberOfOptions)
	}
}

func TestComputeRecommendations(t *testing.T) {
	template, assessment := scoringFixture()
	engine := NewEngine(template)

	sets := engine.ComputeRecommendations(assessment)
	if len(sets) != 1 {
		t.Fatalf("Expected 1 scored result set, got %d", len(sets))
	}
	set := sets[0]

	pointsByID := map[string]float64{}
	for _, r := range set.Results {
		pointsByID[r.ID] = r.Points
	}
	if pointsByID["r1"] != 1 {
		t.Errorf("Expected 1 point for a high-relevance position-2 answer, got %v", pointsByID["r1"])
	}
	if pointsByID["r2"] != 3 {
		t.Errorf("Expected 3 points for a low-relevance position-1 answer, got %v", pointsByID["r2"])
	}

	if len(set.OrderedRecommendations) != 3 {
		t.Fatalf("Expected all positive results recommended, got %d", len(set.OrderedRecommendations))
	}
	gotOrder := []string{
		set.OrderedRecommendations[0].ID,
		set.OrderedRecommendations[1].ID,
		set.OrderedRecommendations[2].ID,
	}
	// r2 leads on points; r1 and r3 tie and keep template order.
	wantOrder := []string{"r2", "r1", "r3"}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("Expected order %v, got %v", wantOrder, gotOrder)
		}
	}
	if set.Recommendation == nil || set.Recommendation.ID != "r2" {
		t.Errorf("Expected r2 as the top recommendation, got %+v", set.Recommendation)
	}
}

func TestComputeRecommendationsDeterministic(t *testing.T) {
	template, assessment := scoringFixture()
	engine := NewEngine(template)

	first := engine.ComputeRecommendations(assessment)
	second := engine.ComputeRecommendations(assessment)

	for i := range first[0].OrderedRecommendations {
		if first[0].OrderedRecommendations[i].ID != second[0].OrderedRecommendations[i].ID {
			t.Fatalf("Expected identical ordering across runs, got %+v vs %+v",
				first[0].OrderedRecommendations, second[0].OrderedRecommendations)
		}
	}
}

func TestRecommendationCarriesFeedbackThumb(t *testing.T) {
	template, assessment := scoringFixture()
	assessment.ResultsetFeedback = []models.FeedbackRecord{
		{ResultsetID: "rs1", ResultID: "r2", FeedbackType: "result", ThumbValue: "UP"},
	}
	engine := NewEngine(template)

	set := engine.ComputeRecommendations(assessment)[0]
	if set.Recommendation == nil || set.Recommendation.ThumbValue != "up" {
		t.Errorf("Expected lowercased thumb value on the top pick, got %+v", set.Recommendation)
	}
}

func TestRepeatableIterationsAccumulate(t *testing.T) {
	template, assessment := scoringFixture()
	template.Categories[0].IsRepeatable = true
	assessment.Answers[0].IsRepeatable = true
	assessment.Answers[0].Iterations = []models.AnswerIteration{
		{Name: "Site A", Questions: []models.AnswerQuestion{{ID: "qa", Answer: "o2", DetailLevel: "1"}}},
		{Name: "Site B", Questions: []models.AnswerQuestion{{ID: "qa", Answer: "o2", DetailLevel: "1"}}},
		{Questions: []models.AnswerQuestion{{ID: "qa", Answer: "o2", DetailLevel: "1"}}},
	}
	engine := NewEngine(template)

	set := engine.ComputeRecommendations(assessment)[0]
	for _, r := range set.Results {
		if r.ID == "r1" && r.Points != 2 {
			t.Errorf("Expected both filled slots to add a point each, got %v", r.Points)
		}
	}
}

func TestRankResultStars(t *testing.T) {
	fiveOptions := make([]models.Option, 5)
	for i := range fiveOptions {
		fiveOptions[i] = models.Option{ID: string(rune('a' + i)), Position: i + 1}
	}

	testCases := []struct {
		name          string
		answer        string // option id on the five-point scale
		stars         int
		starRemainder int
		textRank      int
	}{
		{"top answer fills five stars", "e", 5, 2, 5},
		{"one below top lands mid-scale", "d", 3, 1, 3},
		{"midpoint answer scores nothing", "c", 0, 2, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			template := &models.Questionnaire{
				Key: "generic",
				Categories: []models.Category{
					{ID: "cat", Questions: []models.Question{{ID: "qa", DetailLevel: "1", Options: fiveOptions}}},
				},
				ResultSets: []models.ResultSet{
					{ID: "rs1", Results: []models.Result{
						{ID: "r1", RelevantQuestions: []models.RelevantQuestion{{ID: "qa", Relevance: "high"}}},
					}},
				},
			}
			assessment := &models.Assessment{
				DetailLevel: "2",
				Answers: []models.AnswerCategory{
					{ID: "cat", Iterations: []models.AnswerIteration{
						{Questions: []models.AnswerQuestion{{ID: "qa", Answer: tc.answer, DetailLevel: "1"}}},
					}},
				},
			}

			r := NewEngine(template).ComputeRecommendations(assessment)[0].Results[0]
			if r.Stars != tc.stars {
				t.Errorf("Expected %d stars, got %d", tc.stars, r.Stars)
			}
			if r.StarRemainder != tc.starRemainder {
				t.Errorf("Expected remainder %d, got %d", tc.starRemainder, r.StarRemainder)
			}
			if r.TextRank != tc.textRank {
				t.Errorf("Expected text rank %d, got %d", tc.textRank, r.TextRank)
			}
		})
	}
}

func TestRankResultNarrowScale(t *testing.T) {
	template := &models.Questionnaire{
		Key: "generic",
		Categories: []models.Category{
			{ID: "cat", Questions: []models.Question{
				{ID: "qa", DetailLevel: "1", Options: []models.Option{{ID: "o1", Position: 1}}},
			}},
		},
		ResultSets: []models.ResultSet{
			{ID: "rs1", Results: []models.Result{
				{ID: "r1", RelevantQuestions: []models.RelevantQuestion{{ID: "qa", Relevance: "low"}}},
			}},
		},
	}
	assessment := &models.Assessment{
		DetailLevel: "2",
		Answers: []models.AnswerCategory{
			{ID: "cat", Iterations: []models.AnswerIteration{
				{Questions: []models.AnswerQuestion{{ID: "qa", Answer: "o1", DetailLevel: "1"}}},
			}},
		},
	}

	// A one-option scale has no half-scale to divide by; the rank collapses to
	// defined zeros instead of NaN.
	r := NewEngine(template).ComputeRecommendations(assessment)[0].Results[0]
	if math.IsNaN(r.Points) {
		t.Fatal("Expected finite points on a one-option scale")
	}
	if r.Stars != 0 || r.StarRemainder != 2 || r.TextRank != 1 {
		t.Errorf("Expected stars=0 remainder=2 textRank=1, got %+v", r)
	}
}

func TestComputeDetail(t *testing.T) {
	template, assessment := scoringFixture()
	template.ResultSets[0].Results[1].Contents = []models.Content{
		{
			Href: "/content/beta",
			Overviews: []models.ContentOverview{
				{Position: 2, Text: "second paragraph"},
				{Position: 1, Text: "lead paragraph"},
			},
		},
	}
	assessment.ResultsetFeedback = []models.FeedbackRecord{
		{ResultsetID: "rs1", ResultID: "r2", QuestionID: "qb", FeedbackType: "question", ThumbValue: "DOWN"},
	}
	engine := NewEngine(template)

	detail, err := engine.ComputeDetail(assessment, "rs1", "r2")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if detail.ResultName != "Beta" {
		t.Errorf("Expected result name Beta, got %s", detail.ResultName)
	}
	if len(detail.Questions) != 1 || detail.Questions[0].ID != "qb" {
		t.Fatalf("Expected only the contributing low-relevance answer, got %+v", detail.Questions)
	}
	if detail.Questions[0].ThumbValue != "down" {
		t.Errorf("Expected question feedback thumb carried over, got %q", detail.Questions[0].ThumbValue)
	}
	if detail.ContentPreview == nil || detail.ContentPreview.Text != "lead paragraph" {
		t.Errorf("Expected the position-1 overview as preview, got %+v", detail.ContentPreview)
	}
	if detail.ContentHref != "/content/beta" {
		t.Errorf("Expected content href, got %q", detail.ContentHref)
	}
}

func TestComputeDetailExcludesNonContributing(t *testing.T) {
	template, assessment := scoringFixture()
	// Flip both answers so neither pushes its result above the midpoint.
	assessment.Answers[0].Iterations[0].Questions[0].Answer = "o1" // qa high, position 1
	assessment.Answers[0].Iterations[0].Questions[1].Answer = "o2" // qb low, position 2
	engine := NewEngine(template)

	for _, resultID := range []string{"r1", "r2"} {
		detail, err := engine.ComputeDetail(assessment, "rs1", resultID)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(detail.Questions) != 0 {
			t.Errorf("Expected no contributing answers for %s, got %+v", resultID, detail.Questions)
		}
	}
}

func TestComputeDetailErrors(t *testing.T) {
	template, assessment := scoringFixture()
	engine := NewEngine(template)

	if _, err := engine.ComputeDetail(assessment, "missing", "r1"); err == nil {
		t.Error("Expected an error for an unknown result set")
	}
	if _, err := engine.ComputeDetail(assessment, "rs1", "missing"); err == nil {
		t.Error("Expected an error for an unknown result")
	}
}
