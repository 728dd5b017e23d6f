package scoring

import (
	"survey-tool/internal/filter"
	"survey-tool/internal/models"
)

// TreeNode is one node of the hierarchical questionnaire tree consumed by
// the spider visualization. Leaves carry addressable indices so a click can
// jump straight to a question.
type TreeNode struct {
	Name           string     `json:"name"`
	DataID         string     `json:"dataId,omitempty"`
	Answered       bool       `json:"answered,omitempty"`
	HasOptions     bool       `json:"hasOptions,omitempty"`
	CategoryIndex  int        `json:"categoryIndex,omitempty"`
	IterationIndex int        `json:"iterationIndex,omitempty"`
	QuestionIndex  int        `json:"questionIndex,omitempty"`
	Children       []TreeNode `json:"children,omitempty"`
}

// BuildProgressTree builds the questionnaire -> category -> (iteration) ->
// question tree, filtered by the assessment's detail level (threshold
// comparison, as the diagram always shows the tiered view). Repeatable
// categories expand their filled iterations and mark answered questions.
func (e *Engine) BuildProgressTree(assessment *models.Assessment) TreeNode {
	detailLevel := assessment.DetailLevelValue()
	root := TreeNode{Name: e.template.Name}

	for catIdx := range e.template.Categories {
		templateCat := &e.template.Categories[catIdx]
		node := TreeNode{Name: templateCat.Name, DataID: templateCat.ID}
		answerCat := assessment.CategoryByID(templateCat.ID)

		if templateCat.IsRepeatable && answerCat != nil {
			for itIdx, iteration := range filter.VisibleIterations(answerCat) {
				iterationNode := TreeNode{Name: iteration.Name}
				for qIdx, q := range iteration.Questions {
					templateQ := templateCat.QuestionByID(q.ID)
					if templateQ == nil || filter.Facet(templateQ.DetailLevel) > detailLevel {
						continue
					}
					iterationNode.Children = append(iterationNode.Children, TreeNode{
						Name:           templateQ.Name,
						DataID:         templateQ.ID,
						Answered:       q.Answered(),
						HasOptions:     len(templateQ.Options) > 0,
						CategoryIndex:  catIdx,
						IterationIndex: itIdx,
						QuestionIndex:  qIdx,
					})
				}
				node.Children = append(node.Children, iterationNode)
			}
		} else {
			for _, templateQ := range templateCat.Questions {
				if filter.Facet(templateQ.DetailLevel) > detailLevel {
					continue
				}
				node.Children = append(node.Children, TreeNode{
					Name:       templateQ.Name,
					DataID:     templateQ.ID,
					HasOptions: len(templateQ.Options) > 0,
				})
			}
		}
		root.Children = append(root.Children, node)
	}
	return root
}
