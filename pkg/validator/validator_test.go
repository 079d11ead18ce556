package validator

import (
	"reflect"
	"testing"
)

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name       string
		inName     string
		email      string
		password   string
		wantParams []string
	}{
		{"all valid", "A", "a@x.com", "secret1", nil},
		{"missing name", " ", "a@x.com", "secret1", []string{"name"}},
		{"bad email", "A", "not-an-email", "secret1", []string{"email"}},
		{"empty email", "A", "", "secret1", []string{"email"}},
		{"short password", "A", "a@x.com", "12345", []string{"password"}},
		{"everything wrong", "", "nope", "123", []string{"name", "email", "password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegister(tt.inName, tt.email, tt.password)
			if got := params(errs); !reflect.DeepEqual(got, tt.wantParams) {
				t.Errorf("ValidateRegister() params = %v, want %v", got, tt.wantParams)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		password   string
		wantParams []string
	}{
		{"valid", "a@x.com", "whatever", nil},
		{"bad email", "nope", "whatever", []string{"email"}},
		{"missing password", "a@x.com", "", []string{"password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateLogin(tt.email, tt.password)
			if got := params(errs); !reflect.DeepEqual(got, tt.wantParams) {
				t.Errorf("ValidateLogin() params = %v, want %v", got, tt.wantParams)
			}
		})
	}
}

func TestValidateProfile(t *testing.T) {
	if errs := ValidateProfile("Developer", "Go, HTTP"); errs.HasErrors() {
		t.Errorf("ValidateProfile() = %v, want no errors", errs)
	}
	if errs := ValidateProfile("", ""); len(errs) != 2 {
		t.Errorf("ValidateProfile(empty) = %v, want status and skills errors", errs)
	}
}

func TestValidateExperience(t *testing.T) {
	if errs := ValidateExperience("Dev", "Acme", "2019-01-01"); errs.HasErrors() {
		t.Errorf("ValidateExperience() = %v, want no errors", errs)
	}
	if got := params(ValidateExperience("", "Acme", "")); !reflect.DeepEqual(got, []string{"title", "from"}) {
		t.Errorf("ValidateExperience() params = %v, want [title from]", got)
	}
}

func TestValidatePost(t *testing.T) {
	if errs := ValidatePost("hello"); errs.HasErrors() {
		t.Errorf("ValidatePost() = %v, want no errors", errs)
	}
	if errs := ValidatePost("   "); !errs.HasErrors() {
		t.Error("ValidatePost(blank) reported no errors")
	}
}

func TestSplitSkills(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Go,HTTP,MongoDB", []string{"Go", "HTTP", "MongoDB"}},
		{" Go , HTTP ", []string{"Go", "HTTP"}},
		{"Go,,HTTP,", []string{"Go", "HTTP"}},
		{"solo", []string{"solo"}},
	}

	for _, tt := range tests {
		if got := SplitSkills(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitSkills(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func params(errs ValidationErrors) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Param
	}
	return out
}
