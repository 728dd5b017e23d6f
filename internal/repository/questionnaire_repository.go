package repository

import (
	"context"

	"survey-tool/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QuestionnaireRepository reads the immutable questionnaire templates. The
// documents are write-once content; nothing here mutates them.
type QuestionnaireRepository struct {
	Col *mongo.Collection
}

func NewQuestionnaireRepository(db *mongo.Database) *QuestionnaireRepository {
	return &QuestionnaireRepository{Col: db.Collection("questionnaires")}
}

func (r *QuestionnaireRepository) FindByID(ctx context.Context, surveyID string) (*models.Questionnaire, error) {
	var questionnaire models.Questionnaire
	err := r.Col.FindOne(ctx, bson.M{"_id": surveyID}).Decode(&questionnaire)
	if err != nil {
		return nil, err
	}
	return &questionnaire, nil
}

func (r *QuestionnaireRepository) List(ctx context.Context) ([]models.Questionnaire, error) {
	cursor, err := r.Col.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{
		"_id":  1,
		"key":  1,
		"name": 1,
	}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questionnaires []models.Questionnaire
	if err := cursor.All(ctx, &questionnaires); err != nil {
		return nil, err
	}
	return questionnaires, nil
}
