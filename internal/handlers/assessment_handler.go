package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"survey-tool/internal/navigation"
	"survey-tool/internal/repository"
	"survey-tool/internal/service"
)

type AssessmentHandler struct {
	Service *service.AssessmentService
}

func NewAssessmentHandler(s *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{Service: s}
}

// navigationRequest is the body of every transition call: the caller's
// current state plus the values of the screen being left.
type navigationRequest struct {
	State navigation.State     `json:"state"`
	Input *service.AnswerInput `json:"input"`
}

func writeError(c *gin.Context, err error) {
	switch err {
	case repository.ErrAssessmentNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
	case mongo.ErrNoDocuments:
		c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	assessment, err := h.Service.CreateAssessment(context.Background(), c.Param("surveyId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, assessment)
}

func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	assessment, err := h.Service.GetAssessment(context.Background(), c.Param("surveyId"), c.Param("assessmentId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessment)
}

func (h *AssessmentHandler) UpdateProject(c *gin.Context) {
	var input service.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	assessment, err := h.Service.UpdateProject(context.Background(), c.Param("surveyId"), c.Param("assessmentId"), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessment)
}

func (h *AssessmentHandler) SetDetailLevel(c *gin.Context) {
	var body struct {
		DetailLevel string `json:"detailLevel"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	assessment, err := h.Service.SetDetailLevel(context.Background(), c.Param("surveyId"), c.Param("assessmentId"), body.DetailLevel)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessment)
}

func (h *AssessmentHandler) NameIterations(c *gin.Context) {
	var body struct {
		CategoryID string                 `json:"categoryId"`
		Iterations service.IterationInput `json:"iterations"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	assessment, err := h.Service.NameIterations(context.Background(), c.Param("surveyId"), c.Param("assessmentId"), body.CategoryID, body.Iterations)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessment)
}

func (h *AssessmentHandler) Advance(c *gin.Context) {
	var req navigationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.Service.Advance(context.Background(), c.Param("surveyId"), c.Param("assessmentId"), req.State, req.Input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AssessmentHandler) Retreat(c *gin.Context) {
	var req navigationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.Service.Retreat(context.Background(), c.Param("surveyId"), c.Param("assessmentId"), req.State, req.Input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AssessmentHandler) JumpToCategory(c *gin.Context) {
	var req navigationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.Service.JumpToCategory(context.Background(), c.Param("surveyId"), c.Param("assessmentId"), req.State, c.Param("categoryId"), req.Input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AssessmentHandler) JumpToResults(c *gin.Context) {
	var req navigationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.Service.JumpToResults(context.Background(), c.Param("surveyId"), c.Param("assessmentId"), req.State, req.Input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AssessmentHandler) GetCurrentView(c *gin.Context) {
	var req navigationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.Service.CurrentQuestionView(context.Background(), c.Param("surveyId"), c.Param("assessmentId"), req.State)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AssessmentHandler) ProposeExport(c *gin.Context) {
	assessment, err := h.Service.GetAssessment(context.Background(), c.Param("surveyId"), c.Param("assessmentId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Service.ProposeExportProperties(assessment))
}
