package models

// ResultSet groups the candidate results of one recommendation topic.
type ResultSet struct {
	ID      string   `bson:"id" json:"id"`
	Name    string   `bson:"name" json:"name"`
	Results []Result `bson:"results" json:"results"`
}

type Result struct {
	ID                string             `bson:"id" json:"id"`
	Name              string             `bson:"name" json:"name"`
	RelevantQuestions []RelevantQuestion `bson:"relevant_questions" json:"relevantQuestions"`
	Contents          []Content          `bson:"contents,omitempty" json:"contents,omitempty"`
}

// RelevantQuestion ties a result to a question. Relevance "high" means a high
// answer position favours the result, "low" means a low position does.
type RelevantQuestion struct {
	ID        string `bson:"id" json:"id"`
	Relevance string `bson:"relevance" json:"relevance"`
}

type Content struct {
	Href      string            `bson:"href,omitempty" json:"href,omitempty"`
	Overviews []ContentOverview `bson:"overviews,omitempty" json:"overviews,omitempty"`
}

type ContentOverview struct {
	Position int    `bson:"position" json:"position"`
	Text     string `bson:"text" json:"text"`
}

// RelevantQuestionByID returns the result's relevant question with the given
// id, or nil.
func (r *Result) RelevantQuestionByID(id string) *RelevantQuestion {
	for i := range r.RelevantQuestions {
		if r.RelevantQuestions[i].ID == id {
			return &r.RelevantQuestions[i]
		}
	}
	return nil
}
