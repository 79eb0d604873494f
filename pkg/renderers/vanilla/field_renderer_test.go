package vanilla

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

func assertContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in markup:\n%s", fragment, html)
		}
	}
}

func assertNotContains(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(html, fragment) {
			t.Fatalf("did not expect %q in markup:\n%s", fragment, html)
		}
	}
}

func TestRenderTextFieldWithConstraints(t *testing.T) {
	field := schema.Field{
		ID:          "firstName",
		Type:        schema.FieldTypeText,
		Label:       "First Name",
		Required:    true,
		Placeholder: "Enter your first name",
		MinLength:   schema.Bound(2),
		MaxLength:   schema.Bound(50),
		TestID:      "text-firstName",
	}

	html, err := renderField(field, schema.Text(`Ada "the" <first>`), "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, html,
		`<label class="fw-label" for="fw-firstName">First Name<span class="fw-required" aria-hidden="true">*</span></label>`,
		`name="firstName"`,
		`type="text"`,
		`value="Ada &#34;the&#34; &lt;first&gt;"`,
		`placeholder="Enter your first name"`,
		` required`,
		`minlength="2"`,
		`maxlength="50"`,
		`data-testid="text-firstName"`,
	)
	assertNotContains(t, html, `fw-error`, `aria-invalid`)
}

func TestRenderFieldShowsError(t *testing.T) {
	field := schema.Field{ID: "email", Type: schema.FieldTypeEmail, Label: "Email", Required: true}

	html, err := renderField(field, schema.Value{}, "This field is required")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, html,
		`fw-field--invalid`,
		`type="email"`,
		`aria-invalid="true"`,
		`aria-describedby="fw-email-error"`,
		`<p class="fw-error" id="fw-email-error" role="alert">This field is required</p>`,
	)
}

func TestRenderOptionalFieldHasNoMarker(t *testing.T) {
	field := schema.Field{ID: "phone", Type: schema.FieldTypePhone, Label: "Phone", MaxLength: schema.Bound(10)}

	html, err := renderField(field, schema.Value{}, "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, html, `type="tel"`, `maxlength="10"`)
	assertNotContains(t, html, `fw-required`, ` required`, `minlength`)
}

func TestRenderDateIgnoresLengthBounds(t *testing.T) {
	field := schema.Field{ID: "dob", Type: schema.FieldTypeDate, Label: "Date of Birth", Required: true, Placeholder: "ignored"}

	html, err := renderField(field, schema.Text("2000-01-31"), "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, html, `type="date"`, `value="2000-01-31"`, ` required`)
	assertNotContains(t, html, `placeholder=`)
}

func TestRenderTextArea(t *testing.T) {
	field := schema.Field{ID: "bio", Type: schema.FieldTypeTextArea, Label: "Bio", MinLength: schema.Bound(3), MaxLength: schema.Bound(5)}

	html, err := renderField(field, schema.Text("a<b"), "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, html, `<textarea class="fw-input fw-textarea" id="fw-bio" name="bio" minlength="3" maxlength="5">a&lt;b</textarea>`)
}

func TestRenderDropdownHasSentinelFirst(t *testing.T) {
	field := schema.Field{
		ID:       "department",
		Type:     schema.FieldTypeDropdown,
		Label:    "Department",
		Required: true,
		Options: []schema.FieldOption{
			{Value: "cs", Label: "Computer Science", TestID: "dept-cs"},
			{Value: "ee", Label: "Electrical"},
		},
	}

	html, err := renderField(field, schema.Text("ee"), "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	sentinel := strings.Index(html, `<option value="">Select an option</option>`)
	first := strings.Index(html, `<option value="cs" data-testid="dept-cs">Computer Science</option>`)
	if sentinel < 0 || first < 0 || sentinel > first {
		t.Fatalf("expected sentinel option before declared options:\n%s", html)
	}
	assertContains(t, html, `<option value="ee" selected>Electrical</option>`)
}

func TestRenderRadioGroup(t *testing.T) {
	field := schema.Field{
		ID:       "year",
		Type:     schema.FieldTypeRadio,
		Label:    "Year",
		Required: true,
		Options: []schema.FieldOption{
			{Value: "1", Label: "First", TestID: "radio-year-1"},
			{Value: "2", Label: "Second", TestID: "radio-year-2"},
		},
	}

	html, err := renderField(field, schema.Text("2"), "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, html,
		`<label class="fw-label" id="fw-year-label">Year`,
		`role="radiogroup"`,
		`name="year" type="radio" value="1" data-testid="radio-year-1" required>`,
		`name="year" type="radio" value="2" data-testid="radio-year-2" checked required>`,
	)
	if strings.Count(html, `type="radio"`) != 2 {
		t.Fatalf("expected one radio per option:\n%s", html)
	}
}

func TestRenderCheckboxGroupMarksEachSelection(t *testing.T) {
	field := schema.Field{
		ID:    "interests",
		Type:  schema.FieldTypeCheckbox,
		Label: "Interests",
		Options: []schema.FieldOption{
			{Value: "A", Label: "Arts"},
			{Value: "B", Label: "Biology"},
			{Value: "C", Label: "Coding"},
		},
	}

	html, err := renderField(field, schema.Set("A", "C"), "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, html,
		`role="group"`,
		`value="A" checked>`,
		`value="B">`,
		`value="C" checked>`,
	)
}

func TestRenderUnknownTypeFails(t *testing.T) {
	_, err := renderField(schema.Field{ID: "x", Type: "slider", Label: "X"}, schema.Value{}, "")
	if !errors.Is(err, render.ErrUnsupportedField) {
		t.Fatalf("expected ErrUnsupportedField, got %v", err)
	}
}

func TestSanitizeDescription(t *testing.T) {
	got := sanitizeDescription(`  Tell us <b>about</b> you<script>alert(1)</script>  `)
	if got != "Tell us <b>about</b> you" {
		t.Fatalf("unexpected sanitised description %q", got)
	}
}
