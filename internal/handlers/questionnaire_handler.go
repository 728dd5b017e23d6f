package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"survey-tool/internal/repository"
)

type QuestionnaireHandler struct {
	Repo *repository.QuestionnaireRepository
}

func NewQuestionnaireHandler(repo *repository.QuestionnaireRepository) *QuestionnaireHandler {
	return &QuestionnaireHandler{Repo: repo}
}

func (h *QuestionnaireHandler) GetQuestionnaire(c *gin.Context) {
	surveyID := c.Param("surveyId")
	questionnaire, err := h.Repo.FindByID(context.Background(), surveyID)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, questionnaire)
}

func (h *QuestionnaireHandler) ListQuestionnaires(c *gin.Context) {
	questionnaires, err := h.Repo.List(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, questionnaires)
}
