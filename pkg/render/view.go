package render

import (
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// View is the read-only projection of a session that renderers draw: the
// lifecycle phase plus, once ready, the section under the navigation index.
type View struct {
	RollNumber string
	Status     wizard.Status
	FormTitle  string
	Message    string

	Section schema.Section
	Index   int
	Total   int

	Values schema.FormValues
	Errors map[string]string

	CanPrev   bool
	CanNext   bool
	CanSubmit bool
}

// ViewFromState projects a wizard state. The state is cloned so the view can
// outlive the lock that guarded it.
func ViewFromState(state wizard.State) View {
	state = state.Clone()
	view := View{
		RollNumber: state.RollNumber,
		Status:     state.Status,
		FormTitle:  state.Form.Title,
		Message:    state.Message,
		Index:      state.Index,
		Total:      len(state.Form.Sections),
		Values:     state.Values,
		Errors:     state.Errors,
		CanPrev:    state.CanPrev(),
		CanNext:    state.CanNext(),
		CanSubmit:  state.CanSubmit(),
	}
	if section, ok := state.CurrentSection(); ok {
		view.Section = section
	}
	return view
}

// Value returns the recorded value for a field id.
func (v View) Value(id string) schema.Value {
	return v.Values.Get(id)
}

// Error returns the visible error message for a field id.
func (v View) Error(id string) string {
	return v.Errors[id]
}

// Step is the one-based position of the displayed section.
func (v View) Step() int {
	if v.Total == 0 {
		return 0
	}
	return v.Index + 1
}
