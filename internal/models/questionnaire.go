package models

// Questionnaire is the immutable assessment template: categories of questions
// plus the result sets used for scoring. Loaded once per session and treated
// as read-only.
type Questionnaire struct {
	ID             string         `bson:"_id,omitempty" json:"id"`
	Key            string         `bson:"key" json:"key"`
	Name           string         `bson:"name" json:"name"`
	Categories     []Category     `bson:"categories" json:"categories"`
	ResultSets     []ResultSet    `bson:"result_sets" json:"resultSets"`
	ImageLibraries []ImageLibrary `bson:"image_libraries,omitempty" json:"imageLibraries,omitempty"`
}

// IsExactMode reports whether detail-level filtering uses exact matching
// (the "mm" questionnaire flavour) instead of threshold matching.
func (q *Questionnaire) IsExactMode() bool {
	return q.Key == "mm"
}

type Category struct {
	ID           string     `bson:"id" json:"id"`
	Name         string     `bson:"name" json:"name"`
	IsRepeatable bool       `bson:"is_repeatable" json:"isRepeatable"`
	Questions    []Question `bson:"questions" json:"questions"`
	ImageURL     string     `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	ImgLibID     string     `bson:"img_lib_id,omitempty" json:"imgLibId,omitempty"`
	ImageArea    string     `bson:"image_area,omitempty" json:"imageArea,omitempty"`
}

type Question struct {
	ID              string   `bson:"id" json:"id"`
	Name            string   `bson:"name" json:"name"`
	DetailLevel     string   `bson:"detail_level" json:"detailLevel"`
	Options         []Option `bson:"options" json:"options"`
	MoreInformation string   `bson:"more_information,omitempty" json:"moreInformation,omitempty"`
	ImageURL        string   `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	ImgLibID        string   `bson:"img_lib_id,omitempty" json:"imgLibId,omitempty"`
	ImageArea       string   `bson:"image_area,omitempty" json:"imageArea,omitempty"`
}

// Option position is a 1-based rank used both for display ordering and as the
// scoring input.
type Option struct {
	ID            string `bson:"id" json:"id"`
	Position      int    `bson:"position" json:"position"`
	Name          string `bson:"name" json:"name"`
	CurrentStatus string `bson:"current_status,omitempty" json:"currentStatus,omitempty"`
}

type ImageLibrary struct {
	ID     string  `bson:"id" json:"id"`
	Images []Image `bson:"images" json:"images"`
}

type Image struct {
	URL       string     `bson:"url" json:"url"`
	Width     int        `bson:"width" json:"width"`
	Height    int        `bson:"height" json:"height"`
	ImageMaps []ImageMap `bson:"image_maps,omitempty" json:"imageMaps,omitempty"`
}

type ImageMap struct {
	Title  string `bson:"title" json:"title"`
	Coords string `bson:"coords" json:"coords"`
}

// CategoryByID returns the template category with the given id, or nil when
// no such category exists.
func (q *Questionnaire) CategoryByID(id string) *Category {
	for i := range q.Categories {
		if q.Categories[i].ID == id {
			return &q.Categories[i]
		}
	}
	return nil
}

// QuestionByID returns the category's question with the given id, or nil.
func (c *Category) QuestionByID(id string) *Question {
	for i := range c.Questions {
		if c.Questions[i].ID == id {
			return &c.Questions[i]
		}
	}
	return nil
}

// OptionByID returns the question's option with the given id, or nil.
func (q *Question) OptionByID(id string) *Option {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i]
		}
	}
	return nil
}

// ResultSetByID returns the result set with the given id, or nil.
func (q *Questionnaire) ResultSetByID(id string) *ResultSet {
	for i := range q.ResultSets {
		if q.ResultSets[i].ID == id {
			return &q.ResultSets[i]
		}
	}
	return nil
}

// ImageLibraryByID returns the image library with the given id, or nil.
func (q *Questionnaire) ImageLibraryByID(id string) *ImageLibrary {
	for i := range q.ImageLibraries {
		if q.ImageLibraries[i].ID == id {
			return &q.ImageLibraries[i]
		}
	}
	return nil
}
