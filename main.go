package main

import (
	"log"
	"net/http"
	"os"
	"survey-tool/internal/db"
	"survey-tool/internal/event"
	"survey-tool/internal/handlers"
	"survey-tool/internal/repository"
	"survey-tool/internal/service"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI is required")
	}
	db.InitMongo(mongoURI)

	redisURI := os.Getenv("REDIS_URI")
	if redisURI == "" {
		log.Fatal("REDIS_URI is required")
	}
	redisClient := db.InitRedis(redisURI)
	defer redisClient.Close()

	// RabbitMQ event publisher
	rabbitURL := os.Getenv("RABBITMQ_URI")
	eventExchange := os.Getenv("RABBITMQ_EXCHANGE")
	var publisher *event.Publisher
	if rabbitURL != "" && eventExchange != "" {
		var err error
		publisher, err = event.NewPublisher(rabbitURL, eventExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, survey events will not be published")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Client.Database("survey_tool")

	// Questionnaire templates (read-only content)
	questionnaireRepo := repository.NewQuestionnaireRepository(database)
	questionnaireHandler := handlers.NewQuestionnaireHandler(questionnaireRepo)

	// Assessments (key-value store, whole-document writes)
	assessmentStore := repository.NewAssessmentStore(redisClient)
	assessmentService := service.NewAssessmentService(assessmentStore, questionnaireRepo)
	assessmentHandler := handlers.NewAssessmentHandler(assessmentService)

	// Results
	resultsService := service.NewResultsService(assessmentStore, questionnaireRepo)
	resultsHandler := handlers.NewResultsHandler(resultsService)

	publicSurvey := r.Group("/public/survey")
	{
		publicSurvey.GET("/questionnaire", questionnaireHandler.ListQuestionnaires)
		publicSurvey.GET("/questionnaire/:surveyId", func(c *gin.Context) {
			questionnaireHandler.GetQuestionnaire(c)
			if publisher != nil {
				publisher.Publish("survey.questionnaire.viewed", gin.H{"survey_id": c.Param("surveyId")})
			}
		})
	}

	setupAssessmentRoutes(r, assessmentHandler, resultsHandler, publisher)

	port := os.Getenv("PORT")
	if port == "" {
		port = "6677"
	}
	r.Run(":" + port)
}

func setupAssessmentRoutes(r *gin.Engine, assessmentHandler *handlers.AssessmentHandler, resultsHandler *handlers.ResultsHandler, publisher *event.Publisher) {
	protected := r.Group("/protected/survey/:surveyId/assessment")

	// Assessments carry per-user answers; require the caller identity header.
	protected.Use(func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
				"code":  "MISSING_USER_ID",
			})
			c.Abort()
			return
		}
		c.Next()
	})

	{
		// === ASSESSMENT LIFECYCLE ===

		protected.POST("/", func(c *gin.Context) {
			assessmentHandler.CreateAssessment(c)
			if publisher != nil {
				publisher.Publish("survey.assessment.created", gin.H{
					"survey_id": c.Param("surveyId"),
					"user_id":   c.GetHeader("X-User-ID"),
				})
			}
		})

		protected.GET("/:assessmentId", assessmentHandler.GetAssessment)

		protected.PUT("/:assessmentId/project", assessmentHandler.UpdateProject)

		protected.PUT("/:assessmentId/detail-level", func(c *gin.Context) {
			assessmentHandler.SetDetailLevel(c)
			if publisher != nil {
				publisher.Publish("survey.assessment.detail_level_changed", gin.H{
					"survey_id":     c.Param("surveyId"),
					"assessment_id": c.Param("assessmentId"),
				})
			}
		})

		protected.PUT("/:assessmentId/iterations", assessmentHandler.NameIterations)

		protected.GET("/:assessmentId/export-properties", assessmentHandler.ProposeExport)

		// === NAVIGATION ===

		protected.POST("/:assessmentId/view", assessmentHandler.GetCurrentView)

		protected.POST("/:assessmentId/advance", func(c *gin.Context) {
			assessmentHandler.Advance(c)
			if publisher != nil {
				publisher.Publish("survey.assessment.advanced", gin.H{
					"survey_id":     c.Param("surveyId"),
					"assessment_id": c.Param("assessmentId"),
				})
			}
		})

		protected.POST("/:assessmentId/retreat", func(c *gin.Context) {
			assessmentHandler.Retreat(c)
			if publisher != nil {
				publisher.Publish("survey.assessment.retreated", gin.H{
					"survey_id":     c.Param("surveyId"),
					"assessment_id": c.Param("assessmentId"),
				})
			}
		})

		protected.POST("/:assessmentId/jump/:categoryId", assessmentHandler.JumpToCategory)

		protected.POST("/:assessmentId/results", func(c *gin.Context) {
			assessmentHandler.JumpToResults(c)
			if publisher != nil {
				publisher.Publish("survey.assessment.completed", gin.H{
					"survey_id":     c.Param("surveyId"),
					"assessment_id": c.Param("assessmentId"),
				})
			}
		})

		// === RESULTS ===

		protected.GET("/:assessmentId/recommendations", func(c *gin.Context) {
			resultsHandler.GetRecommendations(c)
			if publisher != nil {
				publisher.Publish("survey.results.computed", gin.H{
					"survey_id":     c.Param("surveyId"),
					"assessment_id": c.Param("assessmentId"),
				})
			}
		})

		protected.GET("/:assessmentId/recommendations/:resultSetId/details", resultsHandler.GetRecommendationDetail)
		protected.GET("/:assessmentId/summary", resultsHandler.GetSummary)
		protected.GET("/:assessmentId/details", resultsHandler.GetDetails)
		protected.GET("/:assessmentId/progress-tree", resultsHandler.GetProgressTree)

		protected.POST("/:assessmentId/feedback", func(c *gin.Context) {
			resultsHandler.PostFeedback(c)
			if publisher != nil {
				publisher.Publish("survey.feedback.submitted", gin.H{
					"survey_id":     c.Param("surveyId"),
					"assessment_id": c.Param("assessmentId"),
				})
			}
		})
	}
}
