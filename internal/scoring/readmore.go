package scoring

import (
	"fmt"
	"strings"

	"survey-tool/internal/constants"
	"survey-tool/internal/models"
)

// ContributingAnswer is one flattened answer that actually pushed the
// recommendation's points above zero, shown as "why this was recommended".
type ContributingAnswer struct {
	FlattenedAnswer
	ThumbValue string `json:"thumbValue,omitempty"`
}

// RecommendationDetail is the drill-down view for one recommended result.
type RecommendationDetail struct {
	ResultSetID    string               `json:"resultSetId"`
	ResultID       string               `json:"resultId"`
	ResultName     string               `json:"resultName"`
	Questions      []ContributingAnswer `json:"questions"`
	ContentPreview *models.ContentOverview `json:"contentPreview,omitempty"`
	ContentHref    string               `json:"contentHref,omitempty"`
}

// ComputeDetail explains a result's score: it keeps only the flattened
// answers whose relevance/position combination contributed positively. High
// relevance contributes above the weight midpoint; low relevance below it
// (inclusive only on an even option scale, where the midpoint itself still
// scores).
func (e *Engine) ComputeDetail(assessment *models.Assessment, resultSetID, resultID string) (*RecommendationDetail, error) {
	resultSet := e.template.ResultSetByID(resultSetID)
	if resultSet == nil {
		return nil, fmt.Errorf("result set %s not found", resultSetID)
	}
	var result *models.Result
	for i := range resultSet.Results {
		if resultSet.Results[i].ID == resultID {
			result = &resultSet.Results[i]
			break
		}
	}
	if result == nil {
		return nil, fmt.Errorf("result %s not found in result set %s", resultID, resultSetID)
	}

	flattened, numberOfOptions := e.FlattenAnswers(assessment)
	weights := weightsFor(numberOfOptions)

	detail := &RecommendationDetail{
		ResultSetID: resultSetID,
		ResultID:    resultID,
		ResultName:  result.Name,
	}

	for _, answer := range flattened {
		relevant := result.RelevantQuestionByID(answer.ID)
		if relevant == nil || !contributed(answer.Position, relevant.Relevance, weights) {
			continue
		}
		contributing := ContributingAnswer{FlattenedAnswer: answer}
		for i := range assessment.ResultsetFeedback {
			f := &assessment.ResultsetFeedback[i]
			if f.ResultsetID == resultSetID && f.ResultID == resultID && f.QuestionID == answer.ID {
				contributing.ThumbValue = strings.ToLower(f.ThumbValue)
				break
			}
		}
		detail.Questions = append(detail.Questions, contributing)
	}

	if len(result.Contents) > 0 {
		content := &result.Contents[0]
		detail.ContentHref = content.Href
		for i := range content.Overviews {
			if content.Overviews[i].Position == 1 {
				detail.ContentPreview = &content.Overviews[i]
				break
			}
		}
	}
	return detail, nil
}

func contributed(position int, relevance string, weights Weights) bool {
	switch relevance {
	case constants.RelevanceHigh:
		return position > weights.Adjustment
	case constants.RelevanceLow:
		if weights.AdjustmentIsEven {
			return position <= weights.Adjustment
		}
		return position < weights.Adjustment
	}
	return false
}
