// Package catalog holds the static checklist catalog: areas, the items each
// area requires, and the questions that verify each item.
//
// A Catalog is immutable once built. It is loaded once per process and passed
// explicitly to the engine, so tests can substitute a fixture catalog.
package catalog

import (
	"fmt"
	"strings"

	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
)

// Catalog is a read-only view over the checklist reference data.
type Catalog struct {
	areas       []model.Area
	areaIndex   map[string]int
	items       map[string]model.Item
	itemsByArea map[string][]string // area id -> item ids, declaration order
	questions   map[string]model.Question
	questionIDs []string // declaration order
}

// ItemRequirement is an item joined with the ids of the questions that
// verify it within the item's area.
type ItemRequirement struct {
	Item        model.Item
	QuestionIDs []string
}

// New builds a catalog from flat reference rows, the way they would be read
// from relational tables. Declaration order is preserved everywhere.
//
// A question with an empty AreaID inherits its item's area. A question whose
// AreaID differs from its item's area is accepted but never joined to that
// item (see ItemsForArea); Lint reports it.
func New(areas []model.Area, items []model.Item, questions []model.Question) (*Catalog, error) {
	c := &Catalog{
		areaIndex:   make(map[string]int, len(areas)),
		items:       make(map[string]model.Item, len(items)),
		itemsByArea: make(map[string][]string, len(areas)),
		questions:   make(map[string]model.Question, len(questions)),
	}

	for _, a := range areas {
		if strings.TrimSpace(a.ID) == "" {
			return nil, apperrors.New(apperrors.CodeValidation, "catalog: area id is required")
		}
		if _, dup := c.areaIndex[a.ID]; dup {
			return nil, apperrors.Newf(apperrors.CodeValidation, "catalog: duplicate area %q", a.ID)
		}
		for _, m := range a.Modules {
			if !m.Valid() {
				return nil, apperrors.Newf(apperrors.CodeValidation, "catalog: area %q: unknown module kind %q", a.ID, m)
			}
		}
		c.areaIndex[a.ID] = len(c.areas)
		c.areas = append(c.areas, a)
	}

	for _, it := range items {
		if strings.TrimSpace(it.ID) == "" {
			return nil, apperrors.New(apperrors.CodeValidation, "catalog: item id is required")
		}
		if _, dup := c.items[it.ID]; dup {
			return nil, apperrors.Newf(apperrors.CodeValidation, "catalog: duplicate item %q", it.ID)
		}
		if _, ok := c.areaIndex[it.AreaID]; !ok {
			return nil, apperrors.Newf(apperrors.CodeValidation, "catalog: item %q references unknown area %q", it.ID, it.AreaID)
		}
		c.items[it.ID] = it
		c.itemsByArea[it.AreaID] = append(c.itemsByArea[it.AreaID], it.ID)
	}

	for _, q := range questions {
		if strings.TrimSpace(q.ID) == "" {
			return nil, apperrors.New(apperrors.CodeValidation, "catalog: question id is required")
		}
		if _, dup := c.questions[q.ID]; dup {
			return nil, apperrors.Newf(apperrors.CodeValidation, "catalog: duplicate question %q", q.ID)
		}
		item, ok := c.items[q.ItemID]
		if !ok {
			return nil, apperrors.Newf(apperrors.CodeValidation, "catalog: question %q references unknown item %q", q.ID, q.ItemID)
		}
		if q.AreaID == "" {
			q.AreaID = item.AreaID
		}
		if _, ok := c.areaIndex[q.AreaID]; !ok {
			return nil, apperrors.Newf(apperrors.CodeValidation, "catalog: question %q references unknown area %q", q.ID, q.AreaID)
		}
		switch q.Type {
		case "":
			q.Type = model.AnswerTypeStatus
		case model.AnswerTypeStatus, model.AnswerTypeMeasured:
		default:
			return nil, apperrors.Newf(apperrors.CodeValidation, "catalog: question %q has unknown type %q", q.ID, q.Type)
		}
		if q.Type == model.AnswerTypeMeasured && len(q.Reasons) > 0 {
			return nil, apperrors.Newf(apperrors.CodeValidation, "catalog: measured question %q cannot declare deficiency reasons", q.ID)
		}
		reasons, err := model.ParseReasons(q.Reasons)
		if err != nil {
			return nil, fmt.Errorf("catalog: question %q: %w", q.ID, err)
		}
		q.Reasons = reasons.Values()
		c.questions[q.ID] = q
		c.questionIDs = append(c.questionIDs, q.ID)
	}

	return c, nil
}

// Area returns the area with the given id.
func (c *Catalog) Area(id string) (model.Area, error) {
	idx, ok := c.areaIndex[id]
	if !ok {
		return model.Area{}, apperrors.WithMetadata(apperrors.CodeNotFound,
			fmt.Sprintf("area %q not found", id), map[string]string{"area_id": id})
	}
	return c.areas[idx], nil
}

// Areas returns every area in declaration order.
func (c *Catalog) Areas() []model.Area {
	out := make([]model.Area, len(c.areas))
	copy(out, c.areas)
	return out
}

// AreasFor returns the areas inspected by module m, in declaration order.
func (c *Catalog) AreasFor(m model.ModuleKind) []model.Area {
	var out []model.Area
	for _, a := range c.areas {
		if a.EnabledFor(m) {
			out = append(out, a)
		}
	}
	return out
}

// ItemsForArea returns the area's items joined with their question ids.
// Only questions whose own area is areaID are joined; an item may therefore
// come back with no question ids. Callers decide whether such an item counts.
func (c *Catalog) ItemsForArea(areaID string) ([]ItemRequirement, error) {
	if _, err := c.Area(areaID); err != nil {
		return nil, err
	}

	itemIDs := c.itemsByArea[areaID]
	out := make([]ItemRequirement, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		req := ItemRequirement{Item: c.items[itemID], QuestionIDs: []string{}}
		for _, qid := range c.questionIDs {
			q := c.questions[qid]
			if q.ItemID == itemID && q.AreaID == areaID {
				req.QuestionIDs = append(req.QuestionIDs, qid)
			}
		}
		out = append(out, req)
	}
	return out, nil
}

// Question returns the question with the given id.
func (c *Catalog) Question(id string) (model.Question, error) {
	q, ok := c.questions[id]
	if !ok {
		return model.Question{}, apperrors.WithMetadata(apperrors.CodeNotFound,
			fmt.Sprintf("question %q not found", id), map[string]string{"question_id": id})
	}
	return q, nil
}

// QuestionsForArea returns the questions belonging to areaID.
func (c *Catalog) QuestionsForArea(areaID string) []model.Question {
	var out []model.Question
	for _, qid := range c.questionIDs {
		if q := c.questions[qid]; q.AreaID == areaID {
			out = append(out, q)
		}
	}
	return out
}

// Counts returns the number of areas, items and questions.
func (c *Catalog) Counts() (areas, items, questions int) {
	return len(c.areas), len(c.items), len(c.questions)
}

// Lint reports configuration that is legal but probably unintended.
func (c *Catalog) Lint() []string {
	var warnings []string
	for _, a := range c.areas {
		reqs, _ := c.ItemsForArea(a.ID)
		required := 0
		for _, r := range reqs {
			if len(r.QuestionIDs) == 0 {
				warnings = append(warnings, fmt.Sprintf("item %q in area %q has no questions and is not required", r.Item.ID, a.ID))
				continue
			}
			required++
		}
		if required == 0 {
			warnings = append(warnings, fmt.Sprintf("area %q has no required items and will always report PENDING", a.ID))
		}
	}
	for _, qid := range c.questionIDs {
		q := c.questions[qid]
		if item := c.items[q.ItemID]; item.AreaID != q.AreaID {
			warnings = append(warnings, fmt.Sprintf("question %q belongs to area %q but its item %q belongs to area %q", q.ID, q.AreaID, item.ID, item.AreaID))
		}
	}
	return warnings
}
