package catalog

import (
	"fmt"

	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
)

// Document is the nested authoring format shared by the CUE and YAML
// loaders. Questions inherit the enclosing area unless Area is set.
type Document struct {
	Areas []AreaDoc `json:"areas" yaml:"areas"`
}

// AreaDoc declares one area and its items.
type AreaDoc struct {
	ID      string    `json:"id" yaml:"id"`
	Name    string    `json:"name" yaml:"name"`
	Modules []string  `json:"modules,omitempty" yaml:"modules,omitempty"`
	Items   []ItemDoc `json:"items" yaml:"items"`
}

// ItemDoc declares one item and the questions that verify it.
type ItemDoc struct {
	ID        string        `json:"id" yaml:"id"`
	Name      string        `json:"name" yaml:"name"`
	Questions []QuestionDoc `json:"questions" yaml:"questions"`
}

// QuestionDoc declares one question.
type QuestionDoc struct {
	ID      string   `json:"id" yaml:"id"`
	Text    string   `json:"text" yaml:"text"`
	Type    string   `json:"type" yaml:"type"`
	Reasons []string `json:"reasons,omitempty" yaml:"reasons,omitempty"`
	Unit    string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	Area    string   `json:"area,omitempty" yaml:"area,omitempty"`
}

// Flatten converts the nested documents into reference rows.
func Flatten(docs ...Document) ([]model.Area, []model.Item, []model.Question, error) {
	var (
		areas     []model.Area
		items     []model.Item
		questions []model.Question
	)
	for _, doc := range docs {
		for _, ad := range doc.Areas {
			area := model.Area{ID: ad.ID, Name: ad.Name}
			for _, raw := range ad.Modules {
				m, err := model.ParseModuleKind(raw)
				if err != nil {
					return nil, nil, nil, fmt.Errorf("area %q: %w", ad.ID, err)
				}
				area.Modules = append(area.Modules, m)
			}
			areas = append(areas, area)

			for _, id := range ad.Items {
				items = append(items, model.Item{ID: id.ID, AreaID: ad.ID, Name: id.Name})
				for _, qd := range id.Questions {
					areaID := qd.Area
					if areaID == "" {
						areaID = ad.ID
					}
					questions = append(questions, model.Question{
						ID:      qd.ID,
						ItemID:  id.ID,
						AreaID:  areaID,
						Text:    qd.Text,
						Type:    model.AnswerType(qd.Type),
						Reasons: qd.Reasons,
						Unit:    qd.Unit,
					})
				}
			}
		}
	}
	return areas, items, questions, nil
}

// FromDocuments builds a catalog from one or more documents.
func FromDocuments(docs ...Document) (*Catalog, error) {
	areas, items, questions, err := Flatten(docs...)
	if err != nil {
		return nil, err
	}
	return New(areas, items, questions)
}
