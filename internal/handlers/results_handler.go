package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"survey-tool/internal/models"
	"survey-tool/internal/service"
)

type ResultsHandler struct {
	Service *service.ResultsService
}

func NewResultsHandler(s *service.ResultsService) *ResultsHandler {
	return &ResultsHandler{Service: s}
}

func (h *ResultsHandler) GetRecommendations(c *gin.Context) {
	resultSets, err := h.Service.ComputeRecommendations(context.Background(), c.Param("surveyId"), c.Param("assessmentId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resultSets)
}

func (h *ResultsHandler) GetRecommendationDetail(c *gin.Context) {
	resultID := c.Query("resultId")
	detail, err := h.Service.ComputeRecommendationDetail(
		context.Background(),
		c.Param("surveyId"),
		c.Param("assessmentId"),
		c.Param("resultSetId"),
		resultID,
	)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *ResultsHandler) GetSummary(c *gin.Context) {
	summary, err := h.Service.ComputeSummary(context.Background(), c.Param("surveyId"), c.Param("assessmentId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *ResultsHandler) GetDetails(c *gin.Context) {
	details, err := h.Service.ComputeDetails(context.Background(), c.Param("surveyId"), c.Param("assessmentId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *ResultsHandler) GetProgressTree(c *gin.Context) {
	tree, err := h.Service.BuildProgressTree(context.Background(), c.Param("surveyId"), c.Param("assessmentId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

func (h *ResultsHandler) PostFeedback(c *gin.Context) {
	var record models.FeedbackRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	assessment, err := h.Service.RecordFeedback(context.Background(), c.Param("surveyId"), c.Param("assessmentId"), record)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, assessment.ResultsetFeedback)
}
