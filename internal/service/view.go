package service

import (
	"survey-tool/internal/models"
	"survey-tool/internal/navigation"
)

// CurrentView is the data contract handed to the rendering collaborator for
// one screen: the resolved category/question pair, the iteration slots when
// naming, and the image metadata the template attaches.
type CurrentView struct {
	Boundary string `json:"boundary,omitempty"`

	CategoryID       string `json:"categoryId,omitempty"`
	CategoryName     string `json:"categoryName,omitempty"`
	CategoryComments string `json:"categoryComments,omitempty"`
	IterationName    string `json:"iterationName,omitempty"`

	Question *QuestionView `json:"question,omitempty"`
	// IterationSlots carries every slot (filled or not) of a repeatable
	// category while on its naming screen.
	IterationSlots []string `json:"iterationSlots,omitempty"`

	Image          string `json:"image,omitempty"`
	ImageMapCoords string `json:"imageMapCoords,omitempty"`
	ImageWidth     int    `json:"imageWidth,omitempty"`
	ImageHeight    int    `json:"imageHeight,omitempty"`

	Progress float64 `json:"progress"`
}

type QuestionView struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Options         []OptionView `json:"options"`
	Comments        string       `json:"comments,omitempty"`
	Priority        int          `json:"priority"`
	PriorityHigh    bool         `json:"priorityHigh"`
	PriorityMid     bool         `json:"priorityMid"`
	PriorityLow     bool         `json:"priorityLow"`
	ShowPriority    bool         `json:"showPriority"`
	MoreInformation string       `json:"moreInformation,omitempty"`
}

type OptionView struct {
	ID         string `json:"id"`
	Position   int    `json:"position"`
	Name       string `json:"name"`
	IsSelected bool   `json:"isSelected"`
}

func (s *AssessmentService) buildView(
	template *models.Questionnaire,
	assessment *models.Assessment,
	machine *navigation.Machine,
	state navigation.State,
) *CurrentView {
	position, total := machine.Progress(state)
	view := &CurrentView{Progress: float64(position) / float64(total) * 100}

	switch state.Kind {
	case navigation.KindBoundaryEnd:
		view.Boundary = "end"
		view.Progress = 100
		return view
	case navigation.KindBoundaryFront:
		view.Boundary = "front"
		return view
	}

	answerCat, iteration, answerQ := machine.Current(state)
	if answerCat == nil {
		return view
	}
	templateCat := template.CategoryByID(answerCat.ID)
	if templateCat == nil {
		return view
	}

	view.CategoryID = templateCat.ID
	view.CategoryName = templateCat.Name
	view.CategoryComments = answerCat.Comments
	if iteration != nil && iteration.Name != "" {
		view.IterationName = iteration.Name
	}

	if state.Kind == navigation.KindIterationNaming {
		// The naming screen shows every slot, filled or not; the filtered
		// iteration list would hide the empty ones.
		full := assessment.CategoryByID(answerCat.ID)
		if full != nil {
			for _, slot := range full.Iterations {
				view.IterationSlots = append(view.IterationSlots, slot.Name)
			}
		}
		s.resolveImage(template, templateCat, nil, view)
		return view
	}

	var templateQ *models.Question
	if answerQ != nil {
		templateQ = templateCat.QuestionByID(answerQ.ID)
	}
	if templateQ != nil {
		priority := answerQ.PriorityValue()
		question := &QuestionView{
			ID:              templateQ.ID,
			Name:            templateQ.Name,
			Comments:        answerQ.Comments,
			Priority:        priority,
			PriorityHigh:    priority == 3,
			PriorityMid:     priority == 2,
			PriorityLow:     priority == 1,
			ShowPriority:    showPriority(assessment, len(templateQ.Options)),
			MoreInformation: templateQ.MoreInformation,
		}
		for _, opt := range templateQ.Options {
			question.Options = append(question.Options, OptionView{
				ID:         opt.ID,
				Position:   opt.Position,
				Name:       opt.Name,
				IsSelected: opt.ID == answerQ.Answer,
			})
		}
		view.Question = question
	}

	s.resolveImage(template, templateCat, templateQ, view)
	return view
}

// resolveImage picks the question's image metadata over the category's, the
// way the question screen template expects it: a question-level library
// without an area suppresses the map, a question area without a library falls
// back to the category's library.
func (s *AssessmentService) resolveImage(
	template *models.Questionnaire,
	category *models.Category,
	question *models.Question,
	view *CurrentView,
) {
	if question != nil && question.ImageURL != "" {
		view.Image = question.ImageURL
	} else if category.ImageURL != "" {
		view.Image = category.ImageURL
	}

	var libID, area string
	switch {
	case question != nil && question.ImgLibID != "" && question.ImageArea != "":
		libID, area = question.ImgLibID, question.ImageArea
	case question != nil && question.ImgLibID != "":
		return
	case question != nil && question.ImageArea != "":
		libID, area = category.ImgLibID, question.ImageArea
	default:
		libID, area = category.ImgLibID, category.ImageArea
	}

	lib := template.ImageLibraryByID(libID)
	if lib == nil || len(lib.Images) == 0 {
		return
	}
	image := &lib.Images[0]
	view.ImageWidth = image.Width
	view.ImageHeight = image.Height
	if area == "" {
		return
	}
	for _, m := range image.ImageMaps {
		if m.Title == area {
			view.ImageMapCoords = m.Coords
			return
		}
	}
}
