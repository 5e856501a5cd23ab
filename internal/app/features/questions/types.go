// internal/app/features/questions/types.go
package questions

import (
	"net/url"

	"github.com/dalemusser/eventdash/internal/app/system/collection"
	"github.com/dalemusser/eventdash/internal/app/system/paging"
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/eventdash/internal/domain/models"
)

type option struct {
	ID   string
	Name string
}

type questionRow struct {
	ID       string
	Question string
	Trait    string
	Type     string
}

type groupVM struct {
	Key  string
	Rows []questionRow
}

type draftRow struct {
	Index    int
	Question string
	Trait    string
	Type     string
}

type pagerVM struct {
	Pager   paging.Pager
	BaseURL string
	Target  string
}

type pageData struct {
	viewdata.BaseVM

	Traits []option
	Types  []option

	Type    string
	Trait   string
	GroupBy bool

	Rows   []questionRow
	Groups []groupVM
	Total  int
	Empty  bool
	Error  string
	Pager  pagerVM

	Drafts     []draftRow
	DraftError string
	Draft      draftInput
}

type typesData struct {
	viewdata.BaseVM
	Types []option
	Error string
}

func toRow(q models.Question) questionRow {
	row := questionRow{ID: q.ID, Question: q.Question, Trait: q.TraitID.Trait, Type: q.TypeID.Name}
	if row.Trait == "" {
		row.Trait = collection.UnknownGroup
	}
	if row.Type == "" {
		row.Type = collection.UnknownGroup
	}
	return row
}

func toRows(qs []models.Question) []questionRow {
	out := make([]questionRow, 0, len(qs))
	for _, q := range qs {
		out = append(out, toRow(q))
	}
	return out
}

func traitOptions(ts []models.Trait) []option {
	out := make([]option, 0, len(ts))
	for _, t := range ts {
		out = append(out, option{ID: t.ID, Name: t.Label()})
	}
	return out
}

func typeOptions(ts []models.EventType) []option {
	out := make([]option, 0, len(ts))
	for _, t := range ts {
		out = append(out, option{ID: t.ID, Name: t.EventType})
	}
	return out
}

func nameOf(opts []option, id string) string {
	for _, o := range opts {
		if o.ID == id {
			return o.Name
		}
	}
	return ""
}

func toDraftRows(ds []models.NewQuestion, traits, types []option) []draftRow {
	out := make([]draftRow, 0, len(ds))
	for i, d := range ds {
		out = append(out, draftRow{
			Index:    i,
			Question: d.Question,
			Trait:    nameOf(traits, d.TraitID),
			Type:     nameOf(types, d.TypeID),
		})
	}
	return out
}

// tableURL is the partial endpoint with the active filters, ready for a
// trailing "page=N".
func tableURL(typ, trait string, group bool) string {
	q := url.Values{}
	if typ != "" {
		q.Set("type", typ)
	}
	if trait != "" {
		q.Set("trait", trait)
	}
	if !group {
		q.Set("group", "off")
	}
	if len(q) == 0 {
		return basePath + "/table?"
	}
	return basePath + "/table?" + q.Encode() + "&"
}
