package wizard

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/validation"
)

func readyState(t *testing.T, form schema.Form) *State {
	t.Helper()
	if err := form.Validate(); err != nil {
		t.Fatalf("fixture form invalid: %v", err)
	}
	state := NewState()
	state.Begin("R-1")
	state.Loaded(form)
	return &state
}

func twoSectionForm() schema.Form {
	return schema.Form{Sections: []schema.Section{
		{Title: "Contact", Fields: []schema.Field{
			{ID: "email", Type: schema.FieldTypeEmail, Label: "Email", Required: true},
		}},
		{Title: "Extra", Fields: []schema.Field{
			{ID: "notes", Type: schema.FieldTypeTextArea, Label: "Notes"},
		}},
	}}
}

func TestSingleSectionSubmit(t *testing.T) {
	form := schema.Form{Sections: []schema.Section{
		{Title: "Only", Fields: []schema.Field{
			{ID: "name", Type: schema.FieldTypeText, Label: "Name", Required: true},
		}},
	}}
	state := readyState(t, form)

	if state.CanNext() {
		t.Fatalf("single section must not offer Next")
	}
	if !state.CanSubmit() {
		t.Fatalf("single section must offer Submit")
	}

	_, ok, err := state.Submit(SubmitValidateCurrent)
	if err != nil || ok {
		t.Fatalf("expected empty required field to block submit, ok=%v err=%v", ok, err)
	}
	if got := state.ErrorFor("name"); got != validation.MessageRequired {
		t.Fatalf("expected required error, got %q", got)
	}

	if err := state.SetValue("name", schema.Text("Ada")); err != nil {
		t.Fatalf("set value: %v", err)
	}
	values, ok, err := state.Submit(SubmitValidateCurrent)
	if err != nil || !ok {
		t.Fatalf("expected submit to pass, ok=%v err=%v", ok, err)
	}
	if diff := cmp.Diff(map[string]any{"name": "Ada"}, values.Plain()); diff != "" {
		t.Fatalf("submitted values mismatch (-want +got):\n%s", diff)
	}
	if state.ErrorFor("name") != "" {
		t.Fatalf("expected error cleared after passing validation")
	}
}

func TestNextGatesOnRequiredEmail(t *testing.T) {
	state := readyState(t, twoSectionForm())

	advanced, err := state.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if advanced || state.Index != 0 {
		t.Fatalf("expected to stay on section 0, index=%d", state.Index)
	}
	if got := state.ErrorFor("email"); got != "This field is required" {
		t.Fatalf("expected inline error under email, got %q", got)
	}

	if err := state.SetValue("email", schema.Text("ada@example.com")); err != nil {
		t.Fatalf("set value: %v", err)
	}
	advanced, err = state.Next()
	if err != nil || !advanced {
		t.Fatalf("expected advance, advanced=%v err=%v", advanced, err)
	}
	if state.Index != 1 {
		t.Fatalf("expected index 1, got %d", state.Index)
	}
	if len(state.Errors) != 0 {
		t.Fatalf("expected no visible errors, got %v", state.Errors)
	}
}

func TestPrevKeepsValuesAndSkipsValidation(t *testing.T) {
	state := readyState(t, twoSectionForm())
	_ = state.SetValue("email", schema.Text("ada@example.com"))
	if _, err := state.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	_ = state.SetValue("notes", schema.Text("x"))

	if err := state.Prev(); err != nil {
		t.Fatalf("prev: %v", err)
	}
	if state.Index != 0 {
		t.Fatalf("expected index 0 after prev, got %d", state.Index)
	}
	if got := state.Values.Get("email").Text(); got != "ada@example.com" {
		t.Fatalf("expected email to persist, got %q", got)
	}
	if got := state.Values.Get("notes").Text(); got != "x" {
		t.Fatalf("expected notes to persist, got %q", got)
	}

	if _, err := state.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	if got := state.Values.Get("notes").Text(); got != "x" {
		t.Fatalf("expected revisited value unchanged, got %q", got)
	}
}

func TestPrevOnInvalidSection(t *testing.T) {
	form := twoSectionForm()
	form.Sections[1].Fields[0].Required = true
	state := readyState(t, form)
	_ = state.SetValue("email", schema.Text("a@b.c"))
	_, _ = state.Next()

	if _, _, err := state.Submit(SubmitValidateCurrent); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if state.ErrorFor("notes") == "" {
		t.Fatalf("expected notes error before leaving")
	}
	if err := state.Prev(); err != nil {
		t.Fatalf("prev must never fail on a ready form above index 0: %v", err)
	}
}

func TestTransitionBoundaries(t *testing.T) {
	state := readyState(t, twoSectionForm())

	if err := state.Prev(); !errors.Is(err, ErrNoPrev) {
		t.Fatalf("expected ErrNoPrev, got %v", err)
	}
	if _, _, err := state.Submit(SubmitValidateCurrent); !errors.Is(err, ErrNotLastSection) {
		t.Fatalf("expected ErrNotLastSection, got %v", err)
	}

	_ = state.SetValue("email", schema.Text("a@b.c"))
	_, _ = state.Next()
	if _, err := state.Next(); !errors.Is(err, ErrNoNext) {
		t.Fatalf("expected ErrNoNext, got %v", err)
	}

	idle := NewState()
	if _, err := idle.Next(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
}

func TestLengthBoundsOnNext(t *testing.T) {
	form := schema.Form{Sections: []schema.Section{
		{Fields: []schema.Field{{ID: "code", Type: schema.FieldTypeText, MinLength: schema.Bound(3), MaxLength: schema.Bound(5)}}},
		{Fields: []schema.Field{{ID: "done", Type: schema.FieldTypeText}}},
	}}

	cases := []struct {
		input   string
		message string
	}{
		{"ab", "Minimum length is 3"},
		{"abcdef", "Maximum length is 5"},
		{"abcd", ""},
	}
	for _, tc := range cases {
		state := readyState(t, form)
		_ = state.SetValue("code", schema.Text(tc.input))
		advanced, err := state.Next()
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if got := state.ErrorFor("code"); got != tc.message {
			t.Fatalf("input %q: got error %q, want %q", tc.input, got, tc.message)
		}
		if advanced != (tc.message == "") {
			t.Fatalf("input %q: advanced=%v", tc.input, advanced)
		}
	}
}

func TestCheckboxSelectionsAreIndependent(t *testing.T) {
	form := schema.Form{Sections: []schema.Section{
		{Fields: []schema.Field{{
			ID:   "letters",
			Type: schema.FieldTypeCheckbox,
			Options: []schema.FieldOption{
				{Value: "A", Label: "A"},
				{Value: "B", Label: "B"},
				{Value: "C", Label: "C"},
			},
		}}},
	}}
	state := readyState(t, form)

	if err := state.SetValue("letters", schema.Set("A")); err != nil {
		t.Fatalf("select A: %v", err)
	}
	current := state.Values.Get("letters").Strings()
	if err := state.SetValue("letters", schema.Set(append(current, "C")...)); err != nil {
		t.Fatalf("select C: %v", err)
	}

	value := state.Values.Get("letters")
	if !value.Contains("A") || !value.Contains("C") {
		t.Fatalf("expected A and C selected, got %v", value.Strings())
	}
	if value.Contains("B") {
		t.Fatalf("B must stay unselected")
	}

	if err := state.SetValue("letters", schema.Set("Z")); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
	if err := state.SetValue("missing", schema.Text("x")); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestWhitespaceCountsAsInput(t *testing.T) {
	form := schema.Form{Sections: []schema.Section{
		{Fields: []schema.Field{
			{ID: "name", Type: schema.FieldTypeText, Required: true},
			{ID: "code", Type: schema.FieldTypeText, MaxLength: schema.Bound(2)},
		}},
		{Fields: []schema.Field{
			{ID: "notes", Type: schema.FieldTypeTextArea},
		}},
	}}

	state := readyState(t, form)
	_ = state.SetValue("name", schema.Text("   "))
	advanced, err := state.Next()
	if err != nil || !advanced {
		t.Fatalf("whitespace name should advance: advanced=%v err=%v errors=%v", advanced, err, state.Errors)
	}

	state = readyState(t, form)
	_ = state.SetValue("name", schema.Text("x"))
	_ = state.SetValue("code", schema.Text("    "))
	advanced, err = state.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if advanced {
		t.Fatalf("over-long whitespace code must block Next")
	}
	if got := state.ErrorFor("code"); got != "Maximum length is 2" {
		t.Fatalf("code error: %q", got)
	}
}

func TestSetValueChecksKind(t *testing.T) {
	form := schema.Form{Sections: []schema.Section{
		{Fields: []schema.Field{
			{ID: "name", Type: schema.FieldTypeText},
			{ID: "year", Type: schema.FieldTypeRadio, Options: []schema.FieldOption{{Value: "1", Label: "1"}}},
			{ID: "langs", Type: schema.FieldTypeCheckbox, Required: true, Options: []schema.FieldOption{
				{Value: "go", Label: "Go"},
				{Value: "rs", Label: "Rust"},
			}},
		}},
	}}
	state := readyState(t, form)

	rejected := []struct {
		id    string
		value schema.Value
	}{
		{"langs", schema.Bool(true)},
		{"name", schema.Bool(true)},
		{"name", schema.Set("a")},
		{"year", schema.Set("1")},
	}
	for _, tc := range rejected {
		if err := state.SetValue(tc.id, tc.value); !errors.Is(err, ErrInvalidValue) {
			t.Fatalf("%s=%v: expected ErrInvalidValue, got %v", tc.id, tc.value.Interface(), err)
		}
	}
	if _, ok := state.Values["langs"]; ok {
		t.Fatalf("rejected value must not be stored")
	}

	if _, ok, err := state.Submit(SubmitValidateCurrent); err != nil || ok {
		t.Fatalf("submit with no languages: ok=%v err=%v", ok, err)
	}
	if got := state.ErrorFor("langs"); got != validation.MessageRequired {
		t.Fatalf("expected required error, got %q", got)
	}

	if err := state.SetValue("langs", schema.Text("go")); err != nil {
		t.Fatalf("text on checkbox: %v", err)
	}
	got := state.Values.Get("langs")
	if got.Kind() != schema.ValueSet {
		t.Fatalf("expected set, got kind %v", got.Kind())
	}
	if diff := cmp.Diff([]string{"go"}, got.Strings()); diff != "" {
		t.Fatalf("langs mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmitPolicies(t *testing.T) {
	build := func() *State {
		state := readyState(t, twoSectionForm())
		_ = state.SetValue("email", schema.Text("a@b.c"))
		_, _ = state.Next()
		// Clear an earlier required value after leaving its section.
		_ = state.SetValue("email", schema.Text(""))
		return state
	}

	current := build()
	values, ok, err := current.Submit(SubmitValidateCurrent)
	if err != nil || !ok {
		t.Fatalf("current-section policy should accept, ok=%v err=%v", ok, err)
	}
	if _, present := values["email"]; !present {
		t.Fatalf("expected values from every visited section")
	}

	all := build()
	_, ok, err = all.Submit(SubmitValidateAll)
	if err != nil || ok {
		t.Fatalf("validate-all policy should reject, ok=%v err=%v", ok, err)
	}
	if all.Index != 0 {
		t.Fatalf("expected navigation to first invalid section, got %d", all.Index)
	}
	if all.ErrorFor("email") == "" {
		t.Fatalf("expected email error to be visible")
	}
}

func TestLifecycle(t *testing.T) {
	state := NewState()
	state.Begin("R-1")
	if state.Status != StatusLoading || state.Ready() {
		t.Fatalf("expected loading state, got %s", state.Status)
	}
	state.Failed("Failed to load form. Please try again.")
	if _, ok := state.CurrentSection(); ok {
		t.Fatalf("failed state must not expose a section")
	}

	state.Begin("R-2")
	state.Loaded(twoSectionForm())
	_ = state.SetValue("email", schema.Text("x@y.z"))
	state.Begin("R-3")
	if len(state.Values) != 0 {
		t.Fatalf("expected values discarded for a new identity")
	}

	state.Loaded(twoSectionForm())
	clone := state.Clone()
	_ = clone.SetValue("email", schema.Text("changed"))
	if state.Values.Get("email").Text() != "" {
		t.Fatalf("clone must not share values")
	}

	state.MarkSubmitted()
	if state.Ready() {
		t.Fatalf("submitted state is terminal")
	}
}
