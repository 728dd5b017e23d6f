// Package scoring turns answered options into weighted recommendation
// rankings, star ratings and urgency tiers. Everything here is pure
// computation over the assessment and the template; lookups that fail resolve
// to defined absences instead of errors.
package scoring

import (
	"math"
	"sort"
	"strings"

	"survey-tool/internal/constants"
	"survey-tool/internal/filter"
	"survey-tool/internal/models"
)

// Engine scores one questionnaire template. It carries no per-assessment
// state; each computation re-derives the visible answers.
type Engine struct {
	template *models.Questionnaire
	mode     filter.Mode
}

func NewEngine(template *models.Questionnaire) *Engine {
	return &Engine{template: template, mode: filter.ModeFor(template)}
}

// FlattenedAnswer is one visible, answered question resolved against the
// template. Position is the 1-based rank of the selected option. Repeatable
// categories can contribute several records with the same question id, one
// per filled iteration.
type FlattenedAnswer struct {
	ID           string `json:"id"`
	Position     int    `json:"position"`
	QuestionName string `json:"questionName"`
	AnswerName   string `json:"answerName"`
}

// FlattenAnswers collects every visible answered question and the largest
// option count seen among them. Answers whose option id no longer resolves
// against the template are dropped (absence, not zero).
func (e *Engine) FlattenAnswers(assessment *models.Assessment) ([]FlattenedAnswer, int) {
	var flattened []FlattenedAnswer
	numberOfOptions := 0

	for i := range assessment.Answers {
		answerCat := &assessment.Answers[i]
		templateCat := e.template.CategoryByID(answerCat.ID)
		if templateCat == nil {
			continue
		}
		for _, iteration := range filter.VisibleIterations(answerCat) {
			for _, q := range filter.VisibleQuestions(&iteration, assessment, e.mode) {
				if !q.Answered() {
					continue
				}
				templateQ := templateCat.QuestionByID(q.ID)
				if templateQ == nil {
					continue
				}
				if len(templateQ.Options) > numberOfOptions {
					numberOfOptions = len(templateQ.Options)
				}
				option := templateQ.OptionByID(q.Answer)
				if option == nil {
					continue
				}
				flattened = append(flattened, FlattenedAnswer{
					ID:           q.ID,
					Position:     option.Position,
					QuestionName: templateQ.Name,
					AnswerName:   option.Name,
				})
			}
		}
	}
	return flattened, numberOfOptions
}

// Weights holds the option-scale midpoint used to center raw positions
// around zero.
type Weights struct {
	NumberOfOptions  int
	Adjustment       int
	AdjustmentIsEven bool
}

func weightsFor(numberOfOptions int) Weights {
	return Weights{
		NumberOfOptions:  numberOfOptions,
		Adjustment:       (numberOfOptions + 1) / 2,
		AdjustmentIsEven: numberOfOptions%2 == 0,
	}
}

// ScoredResult is a template result annotated with its accumulated points and
// the derived display ranks.
type ScoredResult struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Points float64 `json:"points"`
	// Stars is the rounded-up star count; StarRemainder is the 0/1/2
	// tri-state driving half/full rendering of the last star.
	Stars         int    `json:"stars"`
	StarRemainder int    `json:"starRemainder"`
	TextRank      int    `json:"textRank"`
	ThumbValue    string `json:"thumbValue,omitempty"`
}

// ScoredResultSet is a result set with its ordered positive-points
// recommendations and the single top pick.
type ScoredResultSet struct {
	ID                     string         `json:"id"`
	Name                   string         `json:"name"`
	Results                []ScoredResult `json:"results"`
	OrderedRecommendations []ScoredResult `json:"orderedRecommendations"`
	Recommendation         *ScoredResult  `json:"recommendation,omitempty"`
}

// ComputeRecommendations scores every result set of the template against the
// assessment's visible answers. Deterministic: ties keep template order.
func (e *Engine) ComputeRecommendations(assessment *models.Assessment) []ScoredResultSet {
	flattened, numberOfOptions := e.FlattenAnswers(assessment)
	weights := weightsFor(numberOfOptions)

	out := make([]ScoredResultSet, 0, len(e.template.ResultSets))
	for i := range e.template.ResultSets {
		resultSet := &e.template.ResultSets[i]
		scored := ScoredResultSet{ID: resultSet.ID, Name: resultSet.Name}

		for j := range resultSet.Results {
			result := &resultSet.Results[j]
			points := 0.0
			for _, relevant := range result.RelevantQuestions {
				for _, answer := range flattened {
					if answer.ID != relevant.ID {
						continue
					}
					switch relevant.Relevance {
					case constants.RelevanceHigh:
						points += math.Max(0, float64(answer.Position-weights.Adjustment))
					case constants.RelevanceLow:
						points += math.Max(0, float64((5-answer.Position)-weights.Adjustment))
					}
				}
			}
			if len(result.RelevantQuestions) > 0 {
				points /= float64(len(result.RelevantQuestions))
			} else {
				points = 0
			}
			scored.Results = append(scored.Results, rankResult(result, points, numberOfOptions))
		}

		for _, r := range scored.Results {
			if r.Points > 0 {
				scored.OrderedRecommendations = append(scored.OrderedRecommendations, r)
			}
		}
		sort.SliceStable(scored.OrderedRecommendations, func(a, b int) bool {
			return scored.OrderedRecommendations[a].Points > scored.OrderedRecommendations[b].Points
		})

		if len(scored.OrderedRecommendations) > 0 {
			top := scored.OrderedRecommendations[0]
			if feedback := assessment.FindFeedback(resultSet.ID, top.ID, "", constants.FeedbackTypeResult); feedback != nil {
				top.ThumbValue = strings.ToLower(feedback.ThumbValue)
			}
			scored.Recommendation = &top
		}
		out = append(out, scored)
	}
	return out
}

// rankResult derives the star fields from normalized points. Half the option
// scale maps onto five stars; a scale narrower than two options yields zero
// stars instead of dividing by zero.
func rankResult(result *models.Result, points float64, numberOfOptions int) ScoredResult {
	halfScale := numberOfOptions / 2
	unrounded := 0.0
	if halfScale > 0 {
		unrounded = points / float64(halfScale) * 5
	}

	frac := unrounded - math.Floor(unrounded)
	// Stars are rounded up, so a whole number already is a full star.
	remainder := 2
	if frac != 0 {
		remainder = int(math.Round(frac * 2))
	}
	textRank := int(math.Round(unrounded))
	if textRank < 1 {
		textRank = 1
	}

	return ScoredResult{
		ID:            result.ID,
		Name:          result.Name,
		Points:        points,
		Stars:         int(math.Ceil(unrounded)),
		StarRemainder: remainder,
		TextRank:      textRank,
	}
}
