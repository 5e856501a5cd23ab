// internal/app/features/questionnaires/types.go
package questionnaires

import (
	"github.com/dalemusser/eventdash/internal/app/system/viewdata"
	"github.com/dalemusser/eventdash/internal/domain/models"
)

var ratingScale = []int{1, 2, 3, 4, 5}

type questionVM struct {
	ID       string
	Question string
	Trait    string
	Selected bool
	Rating   int
}

type traitGroup struct {
	Trait     string
	Questions []questionVM
	Selected  int
}

type newData struct {
	viewdata.BaseVM
	EventID   string
	EventName string
	Groups    []traitGroup
	Scale     []int
	Max       int
	Error     string
}

type viewData struct {
	viewdata.BaseVM
	EventID   string
	EventName string
	Exists    bool
	Accepting bool
	Questions []questionVM
	Error     string
}

func toQuestionVM(q models.Question) questionVM {
	vm := questionVM{ID: q.ID, Question: q.Question, Trait: traitLabel(q.TraitID.Trait)}
	if vm.Question == "" {
		vm.Question = q.ID
	}
	return vm
}
