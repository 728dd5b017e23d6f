package constants

// Specialized category/question names recognised by the navigation layer.
// The intro category hosts the project-description, detail-level and spider
// screens instead of regular questions, and is excluded from the results
// computations.
const (
	IntroCategoryName       = "Introduction"
	DescriptionQuestionName = "Description"
	DetailsQuestionName     = "Details"
	SpiderQuestionName      = "Spider"
)

// DefaultDetailLevel is used whenever an assessment carries an empty or
// non-numeric detail level.
const DefaultDetailLevel = 2

// DefaultPriority is the fallback for unset/non-numeric question priorities.
const DefaultPriority = 2

// RepeatableIterationSlots is the number of iteration slots a repeatable
// category carries. Slots with an empty name are unused.
const RepeatableIterationSlots = 6

// Relevance values on a result's relevant questions.
const (
	RelevanceHigh = "high"
	RelevanceLow  = "low"
)

// Feedback record types stored on an assessment.
const (
	FeedbackTypeResult   = "result"
	FeedbackTypeQuestion = "question"
	FeedbackTypeSurvey   = "survey"
)

// DefaultExportRevision seeds the export properties of a fresh assessment.
const DefaultExportRevision = "1.0"
