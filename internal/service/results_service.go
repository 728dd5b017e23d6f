package service

import (
	"context"

	"survey-tool/internal/models"
	"survey-tool/internal/repository"
	"survey-tool/internal/scoring"
)

// ResultsService computes the results-phase views: recommendations, the
// summary averages, the per-question details and the progress tree. The
// scoring itself is pure; this layer only pairs the stored assessment with
// its template.
type ResultsService struct {
	Store          repository.AssessmentStore
	Questionnaires *repository.QuestionnaireRepository
}

func NewResultsService(store repository.AssessmentStore, questionnaires *repository.QuestionnaireRepository) *ResultsService {
	return &ResultsService{Store: store, Questionnaires: questionnaires}
}

func (s *ResultsService) load(ctx context.Context, surveyID, assessmentID string) (*scoring.Engine, *models.Assessment, error) {
	template, err := s.Questionnaires.FindByID(ctx, surveyID)
	if err != nil {
		return nil, nil, err
	}
	assessment, err := s.Store.Get(ctx, surveyID, assessmentID)
	if err != nil {
		return nil, nil, err
	}
	return scoring.NewEngine(template), assessment, nil
}

func (s *ResultsService) ComputeRecommendations(ctx context.Context, surveyID, assessmentID string) ([]scoring.ScoredResultSet, error) {
	engine, assessment, err := s.load(ctx, surveyID, assessmentID)
	if err != nil {
		return nil, err
	}
	return engine.ComputeRecommendations(assessment), nil
}

func (s *ResultsService) ComputeRecommendationDetail(ctx context.Context, surveyID, assessmentID, resultSetID, resultID string) (*scoring.RecommendationDetail, error) {
	engine, assessment, err := s.load(ctx, surveyID, assessmentID)
	if err != nil {
		return nil, err
	}
	return engine.ComputeDetail(assessment, resultSetID, resultID)
}

// SummaryView bundles the summary rows with the project header fields the
// summary screen shows.
type SummaryView struct {
	Questionnaire string                    `json:"questionnaire"`
	SurveyID      string                    `json:"surveyId"`
	Name          string                    `json:"name"`
	Contact       string                    `json:"contact"`
	Status        string                    `json:"status"`
	Values        []scoring.CategoryAverage `json:"values"`
}

func (s *ResultsService) ComputeSummary(ctx context.Context, surveyID, assessmentID string) (*SummaryView, error) {
	template, err := s.Questionnaires.FindByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	assessment, err := s.Store.Get(ctx, surveyID, assessmentID)
	if err != nil {
		return nil, err
	}
	engine := scoring.NewEngine(template)
	return &SummaryView{
		Questionnaire: template.Name,
		SurveyID:      surveyID,
		Name:          assessment.ProjectName,
		Contact:       assessment.MainContact,
		Status:        assessment.ProjectStatus,
		Values:        engine.ComputeSummary(assessment),
	}, nil
}

func (s *ResultsService) ComputeDetails(ctx context.Context, surveyID, assessmentID string) ([]scoring.DetailCategory, error) {
	engine, assessment, err := s.load(ctx, surveyID, assessmentID)
	if err != nil {
		return nil, err
	}
	return engine.ComputeDetails(assessment), nil
}

func (s *ResultsService) BuildProgressTree(ctx context.Context, surveyID, assessmentID string) (*scoring.TreeNode, error) {
	engine, assessment, err := s.load(ctx, surveyID, assessmentID)
	if err != nil {
		return nil, err
	}
	tree := engine.BuildProgressTree(assessment)
	return &tree, nil
}

// RecordFeedback upserts a thumb feedback record on the assessment,
// read-modify-write like every other mutation.
func (s *ResultsService) RecordFeedback(ctx context.Context, surveyID, assessmentID string, record models.FeedbackRecord) (*models.Assessment, error) {
	assessment, err := s.Store.Get(ctx, surveyID, assessmentID)
	if err != nil {
		return nil, err
	}
	existing := assessment.FindFeedback(record.ResultsetID, record.ResultID, record.QuestionID, record.FeedbackType)
	if existing != nil {
		existing.ThumbValue = record.ThumbValue
	} else {
		assessment.ResultsetFeedback = append(assessment.ResultsetFeedback, record)
	}
	if err := s.Store.Update(ctx, surveyID, assessmentID, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}
