package models

import (
	"regexp"
	"strconv"
	"time"

	"survey-tool/internal/constants"
)

// Assessment is the mutable per-user document: the same hierarchical shape as
// the template but holding only user-entered answers, priorities and
// comments. Persisted as a whole in the external key-value store under
// (surveyId, assessmentId).
type Assessment struct {
	SurveyID      string `json:"surveyId"`
	AssessmentID  string `json:"assessmentId"`
	ProjectName   string `json:"projectName"`
	MainContact   string `json:"mainContact"`
	ProjectEmail  string `json:"projectEmail,omitempty"`
	ProjectStatus string `json:"projectStatus"`
	// DetailLevel is kept as the raw string the user selected; an empty or
	// non-numeric value means "unset" and falls back to the default.
	DetailLevel       string            `json:"detailLevel"`
	Answers           []AnswerCategory  `json:"answers"`
	ResultsetFeedback []FeedbackRecord  `json:"resultsetFeedback,omitempty"`
	ExportProperties  *ExportProperties `json:"exportProperties,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

type AnswerCategory struct {
	ID           string            `json:"id"`
	Comments     string            `json:"comments"`
	IsRepeatable bool              `json:"isRepeatable"`
	Iterations   []AnswerIteration `json:"iterations"`
}

// AnswerIteration is one instance of a repeatable category. An empty name
// marks an unused slot; the name is the slot's identity.
type AnswerIteration struct {
	Name      string           `json:"name"`
	Questions []AnswerQuestion `json:"questions"`
}

// AnswerQuestion mirrors a template question by shared id. DetailLevel is a
// denormalized copy of the template facet so filtering can run on the answer
// document alone.
type AnswerQuestion struct {
	ID          string `json:"id"`
	Answer      string `json:"answer,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Comments    string `json:"comments,omitempty"`
	DetailLevel string `json:"detailLevel"`
}

// FeedbackRecord is one thumb-up/down feedback entry on a recommendation or
// one of its contributing questions.
type FeedbackRecord struct {
	ResultsetID  string `json:"resultsetId"`
	ResultID     string `json:"resultId,omitempty"`
	QuestionID   string `json:"questionId,omitempty"`
	FeedbackType string `json:"feedbackType"`
	ThumbValue   string `json:"thumbValue"`
}

type ExportProperties struct {
	Revision    string `json:"revision"`
	Description string `json:"description"`
}

// Answered reports whether the question has a recorded answer.
func (q *AnswerQuestion) Answered() bool {
	return q.Answer != ""
}

// PriorityValue coerces the raw priority into its integer form, defaulting
// when unset or non-numeric.
func (q *AnswerQuestion) PriorityValue() int {
	return CalculatePriority(q.Priority)
}

// CalculatePriority coerces a raw priority string to 1..3, defaulting to 2.
func CalculatePriority(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return constants.DefaultPriority
	}
	return n
}

// DetailLevelValue coerces the assessment's detail level to an integer,
// defaulting when empty or malformed.
func (a *Assessment) DetailLevelValue() int {
	n, err := strconv.Atoi(a.DetailLevel)
	if err != nil {
		return constants.DefaultDetailLevel
	}
	return n
}

// Root returns the single root answer-category tree, or nil on an empty or
// malformed document. The model always nests the tree inside a one-element
// answers array.
func (a *Assessment) Root() []AnswerCategory {
	if len(a.Answers) == 0 {
		return nil
	}
	return a.Answers
}

// CategoryByID returns the answer category with the given id, or nil.
func (a *Assessment) CategoryByID(id string) *AnswerCategory {
	for i := range a.Answers {
		if a.Answers[i].ID == id {
			return &a.Answers[i]
		}
	}
	return nil
}

// IterationByName returns the category's iteration slot with the given name,
// or nil. The name is the slot identity for repeatable categories.
func (c *AnswerCategory) IterationByName(name string) *AnswerIteration {
	for i := range c.Iterations {
		if c.Iterations[i].Name == name {
			return &c.Iterations[i]
		}
	}
	return nil
}

// QuestionByID returns the iteration's answer question with the given id,
// or nil.
func (it *AnswerIteration) QuestionByID(id string) *AnswerQuestion {
	for i := range it.Questions {
		if it.Questions[i].ID == id {
			return &it.Questions[i]
		}
	}
	return nil
}

// FindFeedback returns the first feedback record matching the given keys, or
// nil. Empty resultID/questionID act as wildcards only when the stored record
// also leaves them empty.
func (a *Assessment) FindFeedback(resultsetID, resultID, questionID, feedbackType string) *FeedbackRecord {
	for i := range a.ResultsetFeedback {
		f := &a.ResultsetFeedback[i]
		if f.ResultsetID == resultsetID && f.ResultID == resultID && f.QuestionID == questionID && f.FeedbackType == feedbackType {
			return f
		}
	}
	return nil
}

// NewDefaultAssessment synthesizes a blank assessment mirroring the template:
// one iteration per category, or the fixed number of empty slots for
// repeatable categories.
func NewDefaultAssessment(template *Questionnaire, surveyID, assessmentID string) *Assessment {
	now := time.Now().UTC()
	a := &Assessment{
		SurveyID:     surveyID,
		AssessmentID: assessmentID,
		DetailLevel:  "",
		Answers:      make([]AnswerCategory, 0, len(template.Categories)),
		ExportProperties: &ExportProperties{
			Revision: constants.DefaultExportRevision,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, cat := range template.Categories {
		slots := 1
		if cat.IsRepeatable {
			slots = constants.RepeatableIterationSlots
		}
		answerCat := AnswerCategory{
			ID:           cat.ID,
			IsRepeatable: cat.IsRepeatable,
			Iterations:   make([]AnswerIteration, slots),
		}
		for i := range answerCat.Iterations {
			answerCat.Iterations[i].Questions = make([]AnswerQuestion, 0, len(cat.Questions))
			for _, q := range cat.Questions {
				answerCat.Iterations[i].Questions = append(answerCat.Iterations[i].Questions, AnswerQuestion{
					ID:          q.ID,
					DetailLevel: q.DetailLevel,
				})
			}
		}
		a.Answers = append(a.Answers, answerCat)
	}
	return a
}

var revisionPattern = regexp.MustCompile(`^(.*[^\d])(\d+)(.*)$`)

// NextExportRevision increments the trailing number of an export revision
// string ("1.4" -> "1.5", "rev-2a" -> "rev-3a"). Strings without a leading
// prefix before the number are returned unchanged, matching the pattern's
// anchor behaviour.
func NextExportRevision(revision string) string {
	m := revisionPattern.FindStringSubmatch(revision)
	if m == nil {
		return revision
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return revision
	}
	return m[1] + strconv.Itoa(n+1) + m[3]
}
