package scoring

import (
	"math"

	"survey-tool/internal/constants"
	"survey-tool/internal/filter"
	"survey-tool/internal/models"
)

// CategoryAverage is one row of the summary view: the mean answered position
// of a category, rounded to one decimal.
type CategoryAverage struct {
	Category      string  `json:"category"`
	AnswerAverage float64 `json:"answerAverage"`
}

// ComputeSummary averages the answered option positions per category. In
// exact mode above detail level 1 each position is weighted by its priority
// (a priority-3 answer counts three times). Categories without any answered
// visible question are omitted.
func (e *Engine) ComputeSummary(assessment *models.Assessment) []CategoryAverage {
	weighted := e.mode == filter.Exact && assessment.DetailLevel != "1"

	var out []CategoryAverage
	for i := range assessment.Answers {
		answerCat := &assessment.Answers[i]
		templateCat := e.template.CategoryByID(answerCat.ID)
		if templateCat == nil {
			continue
		}

		sum, count := 0, 0
		for _, iteration := range filter.VisibleIterations(answerCat) {
			for _, q := range filter.VisibleQuestions(&iteration, assessment, e.mode) {
				if !q.Answered() {
					continue
				}
				templateQ := templateCat.QuestionByID(q.ID)
				if templateQ == nil {
					continue
				}
				option := templateQ.OptionByID(q.Answer)
				if option == nil {
					continue
				}
				times := 1
				if weighted {
					times = q.PriorityValue()
				}
				sum += option.Position * times
				count += times
			}
		}
		if count == 0 {
			continue
		}
		mean := float64(sum) / float64(count)
		out = append(out, CategoryAverage{
			Category:      templateCat.Name,
			AnswerAverage: math.Round(mean*10) / 10,
		})
	}
	return out
}

// OptionStatus is one cell of the status strip under a detail row.
type OptionStatus struct {
	CurrentStatus string `json:"currentStatus"`
	IsSelected    bool   `json:"isSelected"`
}

// DetailQuestion is one row of the details view.
type DetailQuestion struct {
	Name            string         `json:"name"`
	HasOptions      bool           `json:"hasOptions"`
	Position        int            `json:"position,omitempty"`
	OptionName      string         `json:"optionName,omitempty"`
	Comments        string         `json:"comments,omitempty"`
	Priority        int            `json:"priority"`
	MoreInformation string         `json:"moreInformation,omitempty"`
	Urgency         string         `json:"urgency"`
	AllStatuses     []OptionStatus `json:"allStatuses,omitempty"`
}

type DetailIteration struct {
	Name      string           `json:"name,omitempty"`
	Questions []DetailQuestion `json:"questions"`
}

type DetailCategory struct {
	Category   string            `json:"category"`
	Comments   string            `json:"comments,omitempty"`
	Iterations []DetailIteration `json:"iterations"`
}

// ComputeDetails builds the per-question results breakdown with urgency
// tiers. The intro category and every iteration or category left without
// visible questions are dropped.
func (e *Engine) ComputeDetails(assessment *models.Assessment) []DetailCategory {
	var out []DetailCategory
	for i := range assessment.Answers {
		answerCat := &assessment.Answers[i]
		templateCat := e.template.CategoryByID(answerCat.ID)
		if templateCat == nil || templateCat.Name == constants.IntroCategoryName {
			continue
		}

		var iterations []DetailIteration
		for _, iteration := range filter.VisibleIterations(answerCat) {
			var questions []DetailQuestion
			for _, q := range filter.VisibleQuestions(&iteration, assessment, e.mode) {
				templateQ := templateCat.QuestionByID(q.ID)
				if templateQ == nil {
					continue
				}
				questions = append(questions, e.detailRow(&q, templateQ))
			}
			if len(questions) > 0 {
				iterations = append(iterations, DetailIteration{Name: iteration.Name, Questions: questions})
			}
		}
		if len(iterations) > 0 {
			out = append(out, DetailCategory{
				Category:   templateCat.Name,
				Comments:   answerCat.Comments,
				Iterations: iterations,
			})
		}
	}
	return out
}

func (e *Engine) detailRow(q *models.AnswerQuestion, templateQ *models.Question) DetailQuestion {
	row := DetailQuestion{
		Name:            templateQ.Name,
		HasOptions:      len(templateQ.Options) > 0,
		Comments:        q.Comments,
		Priority:        q.PriorityValue(),
		MoreInformation: templateQ.MoreInformation,
		Urgency:         "none",
	}

	option := templateQ.OptionByID(q.Answer)
	if option != nil && row.HasOptions {
		row.Position = option.Position
		row.OptionName = option.Name
		row.Urgency = urgencyFor(option.Position, row.Priority)
	}

	for _, opt := range templateQ.Options {
		row.AllStatuses = append(row.AllStatuses, OptionStatus{
			CurrentStatus: opt.CurrentStatus,
			IsSelected:    opt.ID == q.Answer,
		})
	}
	return row
}

// urgencyFor classifies how badly a question needs attention: low answer
// positions on high-priority questions escalate.
func urgencyFor(position, priority int) string {
	prepped := (5 - position) * priority
	switch {
	case prepped >= 6:
		return "red"
	case prepped <= 3:
		return "green"
	default:
		return "yellow"
	}
}
