// Package navigation walks an assessment's filtered category -> iteration ->
// question hierarchy. The visible lists are recomputed from the assessment on
// every transition rather than cached, so a detail-level change or a newly
// filled iteration slot is picked up by the very next step.
package navigation

import (
	"fmt"

	"survey-tool/internal/filter"
	"survey-tool/internal/models"
)

// Machine derives transitions over one assessment. It holds no mutable
// pointer state of its own; callers thread the State value explicitly.
type Machine struct {
	assessment *models.Assessment
	mode       filter.Mode
}

func NewMachine(assessment *models.Assessment, mode filter.Mode) *Machine {
	return &Machine{assessment: assessment, mode: mode}
}

// Initial returns the starting state: the first visible question, or the
// iteration-naming screen when the first visible category is repeatable.
func (m *Machine) Initial() State {
	cats := m.categories()
	if len(cats) == 0 {
		return State{Kind: KindBoundaryEnd}
	}
	if cats[0].IsRepeatable {
		return State{Kind: KindIterationNaming, Question: -1}
	}
	return State{Kind: KindQuestion}
}

func (m *Machine) categories() []models.AnswerCategory {
	return filter.VisibleCategories(m.assessment, m.mode)
}

func (m *Machine) iterations(cats []models.AnswerCategory, cp int) []models.AnswerIteration {
	if cp < 0 || cp >= len(cats) {
		return nil
	}
	return filter.VisibleIterations(&cats[cp])
}

func (m *Machine) questions(iters []models.AnswerIteration, ip int) []models.AnswerQuestion {
	if ip < 0 || ip >= len(iters) {
		return nil
	}
	return filter.VisibleQuestions(&iters[ip], m.assessment, m.mode)
}

// clamp re-anchors a state against the freshly filtered lists so a stale
// pointer (detail level changed, slot emptied) can never index out of range.
func (m *Machine) clamp(s State, cats []models.AnswerCategory) State {
	if s.Category >= len(cats) {
		s.Category = len(cats) - 1
	}
	if s.Category < 0 {
		s.Category = 0
	}
	iters := m.iterations(cats, s.Category)
	if s.Iteration >= len(iters) {
		s.Iteration = len(iters) - 1
	}
	if s.Iteration < 0 {
		s.Iteration = 0
	}
	qs := m.questions(iters, s.Iteration)
	if s.Question >= len(qs) {
		s.Question = len(qs) - 1
	}
	lower := 0
	if len(cats) > 0 && cats[s.Category].IsRepeatable && s.Iteration == 0 {
		lower = -1
	}
	if s.Question < lower {
		s.Question = lower
	}
	return s
}

// Advance moves one step forward: next question, else first question of the
// next iteration, else the next category (its iteration-naming screen when
// repeatable), else the end boundary.
func (m *Machine) Advance(s State) State {
	cats := m.categories()
	if len(cats) == 0 {
		return State{Kind: KindBoundaryEnd}
	}
	s = m.clamp(s, cats)
	iters := m.iterations(cats, s.Category)
	qs := m.questions(iters, s.Iteration)

	// A front boundary keeps the first question's pointers; advancing from it
	// re-enters that question instead of skipping it.
	if s.Kind == KindBoundaryFront {
		return m.reanchor(s, cats)
	}

	switch {
	case s.Question+1 < len(qs):
		s.Question++
		s.Kind = KindQuestion
	case s.Iteration+1 < len(iters):
		s.Iteration++
		s.Question = 0
		s.Kind = KindQuestion
	case s.Category+1 < len(cats):
		s.Category++
		s.Iteration = 0
		s.Question = 0
		s.Kind = KindQuestion
		if cats[s.Category].IsRepeatable {
			s.Question = -1
			s.Kind = KindIterationNaming
		}
	default:
		s.Kind = KindBoundaryEnd
	}
	return s
}

// Retreat is the mirror of Advance. The lower question bound is -1 on the
// first iteration of a repeatable category (the naming screen) and 0
// everywhere else. Crossing a category boundary lands on the last question of
// the previous category's last visible iteration.
func (m *Machine) Retreat(s State) State {
	cats := m.categories()
	if len(cats) == 0 {
		return State{Kind: KindBoundaryFront}
	}
	s = m.clamp(s, cats)
	iters := m.iterations(cats, s.Category)

	// An end boundary keeps the last question's pointers; retreating from the
	// results view returns to that question.
	if s.Kind == KindBoundaryEnd {
		return m.reanchor(s, cats)
	}

	lower := 0
	if cats[s.Category].IsRepeatable && s.Iteration == 0 {
		lower = -1
	}

	switch {
	case s.Question-1 >= lower:
		s.Question--
		s.Kind = KindQuestion
		if s.Question == -1 {
			s.Kind = KindIterationNaming
		}
	case s.Iteration-1 >= 0:
		s.Iteration--
		qs := m.questions(iters, s.Iteration)
		s.Question = len(qs) - 1
		s.Kind = KindQuestion
	case s.Category-1 >= 0:
		s.Category--
		iters = m.iterations(cats, s.Category)
		s.Iteration = len(iters) - 1
		if s.Iteration < 0 {
			s.Iteration = 0
		}
		qs := m.questions(iters, s.Iteration)
		s.Question = len(qs) - 1
		s.Kind = KindQuestion
		if s.Question < 0 && cats[s.Category].IsRepeatable {
			s.Question = -1
			s.Kind = KindIterationNaming
		}
	default:
		s.Kind = KindBoundaryFront
	}
	return s
}

// reanchor turns a boundary state back into the question state its pointers
// describe.
func (m *Machine) reanchor(s State, cats []models.AnswerCategory) State {
	s.Kind = KindQuestion
	if s.Question == -1 && cats[s.Category].IsRepeatable {
		s.Kind = KindIterationNaming
	}
	return s
}

// JumpToCategory repositions onto the given category by id, then normalizes
// with an advance/retreat pair so that a category whose first iteration has
// no directly visible question still lands on a valid screen.
func (m *Machine) JumpToCategory(categoryID string) (State, error) {
	cats := m.categories()
	target := -1
	for i := range cats {
		if cats[i].ID == categoryID {
			target = i
			break
		}
	}
	if target == -1 {
		return State{}, fmt.Errorf("category %s is not visible", categoryID)
	}
	s := State{Kind: KindQuestion, Category: target}
	if cats[target].IsRepeatable {
		s.Question = -1
		s.Kind = KindIterationNaming
	}
	return m.Retreat(m.Advance(s)), nil
}

// JumpToResults positions on the very last question and advances once,
// driving the state to the end boundary.
func (m *Machine) JumpToResults() State {
	cats := m.categories()
	if len(cats) == 0 {
		return State{Kind: KindBoundaryEnd}
	}
	s := State{Kind: KindQuestion, Category: len(cats) - 1}
	iters := m.iterations(cats, s.Category)
	s.Iteration = len(iters) - 1
	if s.Iteration < 0 {
		s.Iteration = 0
	}
	qs := m.questions(iters, s.Iteration)
	s.Question = len(qs) - 1
	if s.Question < 0 {
		s.Question = -1
		s.Kind = KindIterationNaming
	}
	return m.Advance(s)
}

// Current resolves the state to the answer documents it points at. The
// returned pointers are nil for boundary states or an empty visible set.
func (m *Machine) Current(s State) (*models.AnswerCategory, *models.AnswerIteration, *models.AnswerQuestion) {
	if s.AtBoundary() {
		return nil, nil, nil
	}
	cats := m.categories()
	if len(cats) == 0 {
		return nil, nil, nil
	}
	s = m.clamp(s, cats)
	cat := &cats[s.Category]
	iters := m.iterations(cats, s.Category)
	if s.Iteration >= len(iters) {
		return cat, nil, nil
	}
	it := &iters[s.Iteration]
	qs := m.questions(iters, s.Iteration)
	if s.Question < 0 || s.Question >= len(qs) {
		return cat, it, nil
	}
	return cat, it, &qs[s.Question]
}

// Progress reports the 1-based position of the current category within the
// visible categories plus the total including the trailing results segment.
func (m *Machine) Progress(s State) (position, total int) {
	cats := m.categories()
	total = len(cats) + 1
	if s.Kind == KindBoundaryEnd {
		return total, total
	}
	s = m.clamp(s, cats)
	return s.Category + 1, total
}
