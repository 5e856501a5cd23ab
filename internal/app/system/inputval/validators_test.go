package inputval

import "testing"

func TestValidate(t *testing.T) {
	type TestInput struct {
		Name  string `validate:"notblank,max=10" label:"Event name"`
		Email string `validate:"required,email" label:"Email address"`
	}

	tests := []struct {
		name       string
		input      TestInput
		wantErrors bool
		wantFirst  string
	}{
		{
			name:       "valid input",
			input:      TestInput{Name: "Run", Email: "run@example.com"},
			wantErrors: false,
		},
		{
			name:       "blank name",
			input:      TestInput{Name: "   ", Email: "run@example.com"},
			wantErrors: true,
			wantFirst:  "Event name is required.",
		},
		{
			name:       "name too long",
			input:      TestInput{Name: "VeryLongNameThatExceedsLimit", Email: "run@example.com"},
			wantErrors: true,
			wantFirst:  "Event name must be at most 10 characters.",
		},
		{
			name:       "invalid email",
			input:      TestInput{Name: "Run", Email: "not-an-email"},
			wantErrors: true,
			wantFirst:  "A valid email address is required.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.input)
			if result.HasErrors() != tt.wantErrors {
				t.Fatalf("HasErrors = %v, want %v (%v)", result.HasErrors(), tt.wantErrors, result.Errors)
			}
			if tt.wantErrors && result.First() != tt.wantFirst {
				t.Errorf("First() = %q, want %q", result.First(), tt.wantFirst)
			}
		})
	}
}

func TestValidate_CustomRules(t *testing.T) {
	type Input struct {
		Date   string `validate:"required,isodate" label:"Start date"`
		Clock  string `validate:"required,clock" label:"Start time"`
		Link   string `validate:"omitempty,httpurl" label:"Link"`
		Rating int    `validate:"gte=1,lte=5" label:"Rating"`
	}

	if r := Validate(Input{Date: "2025-06-01", Clock: "09:15", Rating: 3}); r.HasErrors() {
		t.Errorf("valid input has errors: %v", r.Errors)
	}

	r := Validate(Input{Date: "June 1", Clock: "9am", Link: "nope", Rating: 9})
	if len(r.Errors) != 4 {
		t.Fatalf("got %d errors, want 4: %v", len(r.Errors), r.Errors)
	}
	want := []string{
		"Start date must be a date (YYYY-MM-DD).",
		"Start time must be a time (HH:MM).",
		"Link must be a valid http(s) URL.",
		"Rating must be at most 5.",
	}
	for i, w := range want {
		if r.Errors[i].Message != w {
			t.Errorf("error %d = %q, want %q", i, r.Errors[i].Message, w)
		}
	}
}

func TestResult(t *testing.T) {
	r := &Result{}
	if r.All() != "" || r.First() != "" || r.Err() != nil {
		t.Error("empty result should have no messages")
	}
	r.Add("a", "Error 1")
	r.Add("b", "Error 2")
	if r.All() != "Error 1; Error 2" {
		t.Errorf("All() = %q", r.All())
	}
	if r.Err() == nil || r.Error() != "Error 1; Error 2" {
		t.Errorf("Err() = %v", r.Err())
	}
}
