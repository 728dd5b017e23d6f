package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"survey-tool/internal/models"

	"github.com/redis/go-redis/v9"
)

// ErrAssessmentNotFound is returned when no assessment exists under the
// (surveyId, assessmentId) key.
var ErrAssessmentNotFound = errors.New("assessment not found")

// AssessmentStore is the external key-value store holding the per-user
// assessment documents. Writes are whole-document, last-writer-wins; there is
// no conflict detection between concurrent sessions.
type AssessmentStore interface {
	Get(ctx context.Context, surveyID, assessmentID string) (*models.Assessment, error)
	Update(ctx context.Context, surveyID, assessmentID string, assessment *models.Assessment) error
	Create(ctx context.Context, assessment *models.Assessment) error
}

type assessmentStore struct {
	client *redis.Client
}

func NewAssessmentStore(client *redis.Client) AssessmentStore {
	return &assessmentStore{client: client}
}

func assessmentKey(surveyID, assessmentID string) string {
	return "assessment:" + surveyID + ":" + assessmentID
}

func (s *assessmentStore) Get(ctx context.Context, surveyID, assessmentID string) (*models.Assessment, error) {
	data, err := s.client.Get(ctx, assessmentKey(surveyID, assessmentID)).Result()
	if err == redis.Nil {
		return nil, ErrAssessmentNotFound
	}
	if err != nil {
		return nil, err
	}
	var assessment models.Assessment
	if err := json.Unmarshal([]byte(data), &assessment); err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (s *assessmentStore) Update(ctx context.Context, surveyID, assessmentID string, assessment *models.Assessment) error {
	assessment.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(assessment)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, assessmentKey(surveyID, assessmentID), data, 0).Err()
}

func (s *assessmentStore) Create(ctx context.Context, assessment *models.Assessment) error {
	return s.Update(ctx, assessment.SurveyID, assessment.AssessmentID, assessment)
}
