package scoring

import (
	"testing"

	"survey-tool/internal/models"
)

func summaryTemplate(key string) *models.Questionnaire {
	fiveOptions := func() []models.Option {
		out := make([]models.Option, 5)
		for i := range out {
			out[i] = models.Option{ID: string(rune('a' + i)), Position: i + 1, Name: "Level", CurrentStatus: "status"}
		}
		return out
	}
	return &models.Questionnaire{
		Key:  key,
		Name: "Process check",
		Categories: []models.Category{
			{
				ID:   "intro",
				Name: "Introduction",
				Questions: []models.Question{
					{ID: "iq", Name: "Description", DetailLevel: "2", Options: fiveOptions()},
				},
			},
			{
				ID:   "work",
				Name: "Working methods",
				Questions: []models.Question{
					{ID: "q1", Name: "Planning", DetailLevel: "2", Options: fiveOptions()},
					{ID: "q2", Name: "Review", DetailLevel: "2", Options: fiveOptions(), MoreInformation: "See handbook"},
				},
			},
		},
	}
}

func summaryAssessment() *models.Assessment {
	return &models.Assessment{
		DetailLevel: "2",
		Answers: []models.AnswerCategory{
			{
				ID: "intro",
				Iterations: []models.AnswerIteration{
					{Questions: []models.AnswerQuestion{{ID: "iq", DetailLevel: "2"}}},
				},
			},
			{
				ID:       "work",
				Comments: "needs attention",
				Iterations: []models.AnswerIteration{
					{Questions: []models.AnswerQuestion{
						{ID: "q1", Answer: "b", Priority: "3", DetailLevel: "2"}, // position 2
						{ID: "q2", Answer: "a", Priority: "1", DetailLevel: "2"}, // position 1
					}},
				},
			},
		},
	}
}

func TestComputeSummaryPriorityWeighted(t *testing.T) {
	engine := NewEngine(summaryTemplate("mm"))
	assessment := summaryAssessment()

	values := engine.ComputeSummary(assessment)

	// The intro question is unanswered, so only the work category remains.
	if len(values) != 1 {
		t.Fatalf("Expected 1 category average, got %d", len(values))
	}
	// (2*3 + 1*1) / 4 = 1.75, rounded to one decimal.
	if values[0].Category != "Working methods" || values[0].AnswerAverage != 1.8 {
		t.Errorf("Expected Working methods at 1.8, got %+v", values[0])
	}
}

func TestComputeSummaryUnweighted(t *testing.T) {
	testCases := []struct {
		name string
		key  string
		want float64
	}{
		{"threshold flavour ignores priority", "generic", 1.5},
		{"exact flavour at level 1 ignores priority", "mm", 1.5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			template := summaryTemplate(tc.key)
			assessment := summaryAssessment()
			if tc.key == "mm" {
				assessment.DetailLevel = "1"
				for i := range template.Categories {
					for j := range template.Categories[i].Questions {
						template.Categories[i].Questions[j].DetailLevel = "1"
					}
				}
				for i := range assessment.Answers {
					for j := range assessment.Answers[i].Iterations[0].Questions {
						assessment.Answers[i].Iterations[0].Questions[j].DetailLevel = "1"
					}
				}
			}
			values := NewEngine(template).ComputeSummary(assessment)
			if len(values) != 1 || values[0].AnswerAverage != tc.want {
				t.Errorf("Expected average %v, got %+v", tc.want, values)
			}
		})
	}
}

func TestComputeSummarySkipsUnansweredCategories(t *testing.T) {
	engine := NewEngine(summaryTemplate("generic"))
	assessment := summaryAssessment()
	for i := range assessment.Answers[1].Iterations[0].Questions {
		assessment.Answers[1].Iterations[0].Questions[i].Answer = ""
	}

	if values := engine.ComputeSummary(assessment); len(values) != 0 {
		t.Errorf("Expected no averages without answers, got %+v", values)
	}
}

func TestComputeDetailsExcludesIntro(t *testing.T) {
	engine := NewEngine(summaryTemplate("generic"))
	assessment := summaryAssessment()
	assessment.Answers[0].Iterations[0].Questions[0].Answer = "c"

	details := engine.ComputeDetails(assessment)

	if len(details) != 1 || details[0].Category != "Working methods" {
		t.Fatalf("Expected only the work category, got %+v", details)
	}
	if details[0].Comments != "needs attention" {
		t.Errorf("Expected category comments carried over, got %q", details[0].Comments)
	}
	questions := details[0].Iterations[0].Questions
	if len(questions) != 2 {
		t.Fatalf("Expected 2 detail rows, got %d", len(questions))
	}
	if questions[1].MoreInformation != "See handbook" {
		t.Errorf("Expected more-information text on the review row, got %q", questions[1].MoreInformation)
	}
	if len(questions[0].AllStatuses) != 5 || !questions[0].AllStatuses[1].IsSelected {
		t.Errorf("Expected the position-2 status selected, got %+v", questions[0].AllStatuses)
	}
}

func TestUrgencyTiers(t *testing.T) {
	testCases := []struct {
		name     string
		answer   string
		priority string
		want     string
	}{
		{"low answer on high priority escalates", "a", "3", "red"}, // (5-1)*3 = 12
		{"high answer stays calm", "d", "2", "green"},              // (5-4)*2 = 2
		{"midpoint answer warns", "c", "2", "yellow"},              // (5-3)*2 = 4
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			engine := NewEngine(summaryTemplate("generic"))
			assessment := summaryAssessment()
			q := &assessment.Answers[1].Iterations[0].Questions[0]
			q.Answer = tc.answer
			q.Priority = tc.priority

			details := engine.ComputeDetails(assessment)
			if got := details[0].Iterations[0].Questions[0].Urgency; got != tc.want {
				t.Errorf("Expected urgency %q, got %q", tc.want, got)
			}
		})
	}
}

func TestUrgencyNoneWithoutAnswer(t *testing.T) {
	engine := NewEngine(summaryTemplate("generic"))
	assessment := summaryAssessment()
	assessment.Answers[1].Iterations[0].Questions[0].Answer = ""

	details := engine.ComputeDetails(assessment)
	row := details[0].Iterations[0].Questions[0]
	if row.Urgency != "none" {
		t.Errorf("Expected urgency none for an unanswered row, got %q", row.Urgency)
	}
	if row.Position != 0 || row.OptionName != "" {
		t.Errorf("Expected no option fields on an unanswered row, got %+v", row)
	}
}

func TestBuildProgressTree(t *testing.T) {
	template := summaryTemplate("generic")
	template.Categories[1].IsRepeatable = true
	template.Categories[1].Questions[1].DetailLevel = "3" // hidden at level 2

	assessment := summaryAssessment()
	assessment.Answers[1].IsRepeatable = true
	assessment.Answers[1].Iterations = []models.AnswerIteration{
		{Name: "Site A", Questions: []models.AnswerQuestion{
			{ID: "q1", Answer: "b", DetailLevel: "2"},
			{ID: "q2", DetailLevel: "3"},
		}},
		{Questions: []models.AnswerQuestion{{ID: "q1", DetailLevel: "2"}}},
	}

	tree := NewEngine(template).BuildProgressTree(assessment)

	if tree.Name != "Process check" {
		t.Errorf("Expected the questionnaire name at the root, got %q", tree.Name)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("Expected 2 category nodes, got %d", len(tree.Children))
	}

	work := tree.Children[1]
	if len(work.Children) != 1 || work.Children[0].Name != "Site A" {
		t.Fatalf("Expected only the filled slot expanded, got %+v", work.Children)
	}
	leaves := work.Children[0].Children
	if len(leaves) != 1 {
		t.Fatalf("Expected the level-3 question filtered out, got %+v", leaves)
	}
	leaf := leaves[0]
	if leaf.DataID != "q1" || !leaf.Answered || !leaf.HasOptions {
		t.Errorf("Unexpected leaf node: %+v", leaf)
	}
	if leaf.CategoryIndex != 1 || leaf.IterationIndex != 0 || leaf.QuestionIndex != 0 {
		t.Errorf("Expected addressable indices 1/0/0, got %+v", leaf)
	}
}
