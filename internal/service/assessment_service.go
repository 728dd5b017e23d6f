package service

import (
	"context"
	"fmt"
	"strconv"

	"survey-tool/internal/constants"
	"survey-tool/internal/filter"
	"survey-tool/internal/models"
	"survey-tool/internal/navigation"
	"survey-tool/internal/repository"

	"github.com/google/uuid"
)

// AssessmentService orchestrates navigation over assessments. Every mutating
// operation follows the read-modify-write discipline: fetch a fresh copy from
// the store, mutate, write the whole document back. That is the only
// consistency mechanism; two concurrent sessions on the same assessment are
// last-writer-wins.
type AssessmentService struct {
	Store          repository.AssessmentStore
	Questionnaires *repository.QuestionnaireRepository
}

func NewAssessmentService(store repository.AssessmentStore, questionnaires *repository.QuestionnaireRepository) *AssessmentService {
	return &AssessmentService{Store: store, Questionnaires: questionnaires}
}

// AnswerInput carries the user-entered values of the question screen being
// left. A nil input means the transition came from a non-question screen.
type AnswerInput struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
	Priority   string `json:"priority"`
	Comments   string `json:"comments"`
}

// IterationInput names the iteration slots of a repeatable category.
type IterationInput struct {
	Names    []string `json:"names"`
	Comments string   `json:"comments"`
}

// ProjectInput updates the assessment's project description fields.
type ProjectInput struct {
	ProjectName   string `json:"projectName"`
	MainContact   string `json:"mainContact"`
	ProjectEmail  string `json:"projectEmail"`
	ProjectStatus string `json:"projectStatus"`
}

// CreateAssessment synthesizes a default assessment from the survey's
// template and persists it under a fresh id.
func (s *AssessmentService) CreateAssessment(ctx context.Context, surveyID string) (*models.Assessment, error) {
	template, err := s.Questionnaires.FindByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	assessment := models.NewDefaultAssessment(template, surveyID, uuid.NewString())
	if err := s.Store.Create(ctx, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

func (s *AssessmentService) GetAssessment(ctx context.Context, surveyID, assessmentID string) (*models.Assessment, error) {
	return s.Store.Get(ctx, surveyID, assessmentID)
}

// UpdateProject writes the project description fields.
func (s *AssessmentService) UpdateProject(ctx context.Context, surveyID, assessmentID string, input ProjectInput) (*models.Assessment, error) {
	assessment, err := s.Store.Get(ctx, surveyID, assessmentID)
	if err != nil {
		return nil, err
	}
	assessment.ProjectName = input.ProjectName
	assessment.MainContact = input.MainContact
	assessment.ProjectEmail = input.ProjectEmail
	assessment.ProjectStatus = input.ProjectStatus
	if err := s.Store.Update(ctx, surveyID, assessmentID, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

// SetDetailLevel changes the filtering facet. Navigation states held by the
// caller are indices into the previous visible lists; the next transition
// re-anchors them against the recomputed ones.
func (s *AssessmentService) SetDetailLevel(ctx context.Context, surveyID, assessmentID, level string) (*models.Assessment, error) {
	assessment, err := s.Store.Get(ctx, surveyID, assessmentID)
	if err != nil {
		return nil, err
	}
	assessment.DetailLevel = level
	if err := s.Store.Update(ctx, surveyID, assessmentID, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

// NameIterations fills the iteration slots of a repeatable category and its
// comments. Surplus names beyond the fixed slot count are ignored.
func (s *AssessmentService) NameIterations(ctx context.Context, surveyID, assessmentID, categoryID string, input IterationInput) (*models.Assessment, error) {
	assessment, err := s.Store.Get(ctx, surveyID, assessmentID)
	if err != nil {
		return nil, err
	}
	category := assessment.CategoryByID(categoryID)
	if category == nil {
		return nil, fmt.Errorf("category %s not found", categoryID)
	}
	if !category.IsRepeatable {
		return nil, fmt.Errorf("category %s is not repeatable", categoryID)
	}
	for i := range category.Iterations {
		if i >= len(input.Names) {
			break
		}
		category.Iterations[i].Name = input.Names[i]
	}
	category.Comments = input.Comments
	if err := s.Store.Update(ctx, surveyID, assessmentID, assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

// NavigationResult is what a transition hands back to the rendering
// collaborator: the next state to thread plus the resolved screen.
type NavigationResult struct {
	State navigation.State `json:"state"`
	View  *CurrentView     `json:"view"`
}

// Advance records the answer being left (if any) and moves forward one step.
func (s *AssessmentService) Advance(ctx context.Context, surveyID, assessmentID string, state navigation.State, input *AnswerInput) (*NavigationResult, error) {
	return s.transition(ctx, surveyID, assessmentID, state, input, func(m *navigation.Machine) navigation.State {
		return m.Advance(state)
	})
}

// Retreat records the answer being left (if any) and moves back one step.
func (s *AssessmentService) Retreat(ctx context.Context, surveyID, assessmentID string, state navigation.State, input *AnswerInput) (*NavigationResult, error) {
	return s.transition(ctx, surveyID, assessmentID, state, input, func(m *navigation.Machine) navigation.State {
		return m.Retreat(state)
	})
}

// JumpToCategory repositions onto a category picked from the progress bar.
func (s *AssessmentService) JumpToCategory(ctx context.Context, surveyID, assessmentID string, state navigation.State, categoryID string, input *AnswerInput) (*NavigationResult, error) {
	var jumpErr error
	result, err := s.transition(ctx, surveyID, assessmentID, state, input, func(m *navigation.Machine) navigation.State {
		next, err := m.JumpToCategory(categoryID)
		if err != nil {
			jumpErr = err
			return state
		}
		return next
	})
	if err != nil {
		return nil, err
	}
	if jumpErr != nil {
		return nil, jumpErr
	}
	return result, nil
}

// JumpToResults drives navigation to the end boundary, the trigger for the
// results views.
func (s *AssessmentService) JumpToResults(ctx context.Context, surveyID, assessmentID string, state navigation.State, input *AnswerInput) (*NavigationResult, error) {
	return s.transition(ctx, surveyID, assessmentID, state, input, func(m *navigation.Machine) navigation.State {
		return m.JumpToResults()
	})
}

// CurrentQuestionView resolves a state without transitioning, for re-renders.
func (s *AssessmentService) CurrentQuestionView(ctx context.Context, surveyID, assessmentID string, state navigation.State) (*NavigationResult, error) {
	return s.transition(ctx, surveyID, assessmentID, state, nil, func(m *navigation.Machine) navigation.State {
		return state
	})
}

func (s *AssessmentService) transition(
	ctx context.Context,
	surveyID, assessmentID string,
	state navigation.State,
	input *AnswerInput,
	step func(*navigation.Machine) navigation.State,
) (*NavigationResult, error) {
	template, err := s.Questionnaires.FindByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	assessment, err := s.Store.Get(ctx, surveyID, assessmentID)
	if err != nil {
		return nil, err
	}

	machine := navigation.NewMachine(assessment, filter.ModeFor(template))
	if input != nil {
		s.recordAnswer(assessment, machine, state, input)
	}

	next := step(machine)

	if err := s.Store.Update(ctx, surveyID, assessmentID, assessment); err != nil {
		return nil, err
	}

	view := s.buildView(template, assessment, machine, next)
	return &NavigationResult{State: next, View: view}, nil
}

// recordAnswer writes the user's input onto the question the state points at.
// The filtered lists hand out copies, so the write goes through the identity
// keys (category id, iteration name, question id) back into the document.
func (s *AssessmentService) recordAnswer(assessment *models.Assessment, machine *navigation.Machine, state navigation.State, input *AnswerInput) {
	cat, iteration, question := machine.Current(state)
	if cat == nil || question == nil {
		return
	}
	if input.QuestionID != "" && input.QuestionID != question.ID {
		return
	}

	target := assessment.CategoryByID(cat.ID)
	if target == nil {
		return
	}
	var slot *models.AnswerIteration
	if target.IsRepeatable {
		slot = target.IterationByName(iteration.Name)
	} else if state.Iteration < len(target.Iterations) {
		slot = &target.Iterations[state.Iteration]
	}
	if slot == nil {
		return
	}
	answerQ := slot.QuestionByID(question.ID)
	if answerQ == nil {
		return
	}
	answerQ.Answer = input.Answer
	answerQ.Priority = input.Priority
	answerQ.Comments = input.Comments
}

// ProposeExportProperties returns the export form defaults: the stored
// description and the revision with its trailing number bumped.
func (s *AssessmentService) ProposeExportProperties(assessment *models.Assessment) models.ExportProperties {
	props := models.ExportProperties{Revision: constants.DefaultExportRevision}
	if assessment.ExportProperties != nil {
		props.Description = assessment.ExportProperties.Description
		if assessment.ExportProperties.Revision != "" {
			props.Revision = models.NextExportRevision(assessment.ExportProperties.Revision)
		}
	}
	return props
}

// showPriority mirrors the question screen rule: priorities only appear on
// questions with options once the detail level is past the introductory tier.
func showPriority(assessment *models.Assessment, optionCount int) bool {
	level, err := strconv.Atoi(assessment.DetailLevel)
	return optionCount > 0 && err == nil && level > 1
}
