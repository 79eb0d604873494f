package schema

import (
	"errors"
	"testing"
)

func TestFormValidate(t *testing.T) {
	option := []FieldOption{{Value: "a", Label: "A"}}

	cases := []struct {
		name string
		form Form
		want error
	}{
		{
			name: "no sections",
			form: Form{},
			want: ErrNoSections,
		},
		{
			name: "valid",
			form: Form{Sections: []Section{{Fields: []Field{
				{ID: "name", Type: FieldTypeText, MinLength: Bound(1), MaxLength: Bound(3)},
				{ID: "pick", Type: FieldTypeRadio, Options: option},
			}}}},
		},
		{
			name: "duplicate id across sections",
			form: Form{Sections: []Section{
				{Fields: []Field{{ID: "name", Type: FieldTypeText}}},
				{Fields: []Field{{ID: "name", Type: FieldTypeEmail}}},
			}},
			want: ErrDuplicateFieldID,
		},
		{
			name: "unknown type",
			form: Form{Sections: []Section{{Fields: []Field{{ID: "x", Type: "number"}}}}},
			want: ErrUnknownFieldType,
		},
		{
			name: "selection without options",
			form: Form{Sections: []Section{{Fields: []Field{{ID: "x", Type: FieldTypeDropdown}}}}},
			want: ErrInvalidField,
		},
		{
			name: "options on text",
			form: Form{Sections: []Section{{Fields: []Field{{ID: "x", Type: FieldTypeText, Options: option}}}}},
			want: ErrInvalidField,
		},
		{
			name: "duplicate option values",
			form: Form{Sections: []Section{{Fields: []Field{{ID: "x", Type: FieldTypeCheckbox, Options: []FieldOption{{Value: "a"}, {Value: "a"}}}}}}},
			want: ErrInvalidField,
		},
		{
			name: "length on date",
			form: Form{Sections: []Section{{Fields: []Field{{ID: "x", Type: FieldTypeDate, MaxLength: Bound(3)}}}}},
			want: ErrInvalidField,
		},
		{
			name: "min above max",
			form: Form{Sections: []Section{{Fields: []Field{{ID: "x", Type: FieldTypeTextArea, MinLength: Bound(5), MaxLength: Bound(3)}}}}},
			want: ErrInvalidField,
		},
		{
			name: "missing id",
			form: Form{Sections: []Section{{Fields: []Field{{Type: FieldTypeText}}}}},
			want: ErrInvalidField,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.form.Validate()
			if tc.want == nil {
				if err != nil {
					t.Fatalf("expected valid form, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestFieldTypeClassification(t *testing.T) {
	for _, ft := range FieldTypes() {
		if !ft.Valid() {
			t.Fatalf("%q should be valid", ft)
		}
		if ft.TextLike() && ft.Selection() {
			t.Fatalf("%q cannot be both text-like and selection", ft)
		}
	}
	if _, ok := ParseFieldType("slider"); ok {
		t.Fatalf("slider must not parse")
	}
	if got, ok := ParseFieldType(" TEL "); !ok || got != FieldTypePhone {
		t.Fatalf("expected tel, got %q (%v)", got, ok)
	}
}

func TestCheckCollectsEveryProblem(t *testing.T) {
	form := Form{Sections: []Section{
		{Fields: []Field{
			{ID: "a", Type: "number"},
			{ID: "b", Type: FieldTypeText},
		}},
		{Fields: []Field{
			{ID: "b", Type: FieldTypeRadio},
		}},
	}}

	problems := form.Check()
	if len(problems) != 3 {
		t.Fatalf("expected 3 problems, got %d: %v", len(problems), problems)
	}
	if !errors.Is(problems[0], ErrUnknownFieldType) || problems[0].Path() != "sections[0].fields[0]" {
		t.Fatalf("unexpected first problem %v at %s", problems[0], problems[0].Path())
	}
	if !errors.Is(problems[1], ErrDuplicateFieldID) || problems[1].FieldID != "b" {
		t.Fatalf("unexpected second problem %v", problems[1])
	}
	if !errors.Is(problems[2], ErrInvalidField) || problems[2].Path() != "sections[1].fields[0]" {
		t.Fatalf("unexpected third problem %v at %s", problems[2], problems[2].Path())
	}
}
