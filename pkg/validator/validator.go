package validator

import (
	"net/mail"
	"strings"
)

// FieldError mirrors the API's validation error payload shape.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

type ValidationErrors []FieldError

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v *ValidationErrors) Add(param, msg string) {
	*v = append(*v, FieldError{Msg: msg, Param: param})
}

func ValidateRegister(name, email, password string) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(name) == "" {
		errs.Add("name", "Name is required")
	}

	validateEmail(email, &errs)

	if len(password) < 6 {
		errs.Add("password", "Please enter a password with 6 or more characters")
	}

	return errs
}

func ValidateLogin(email, password string) ValidationErrors {
	var errs ValidationErrors

	validateEmail(email, &errs)

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateProfile(status, skills string) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(status) == "" {
		errs.Add("status", "Status is required")
	}
	if strings.TrimSpace(skills) == "" {
		errs.Add("skills", "Skills is required")
	}

	return errs
}

func ValidateExperience(title, company, from string) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(title) == "" {
		errs.Add("title", "Title is required")
	}
	if strings.TrimSpace(company) == "" {
		errs.Add("company", "Company is required")
	}
	if strings.TrimSpace(from) == "" {
		errs.Add("from", "From date is required")
	}

	return errs
}

func ValidatePost(text string) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(text) == "" {
		errs.Add("text", "Text is required")
	}

	return errs
}

func validateEmail(email string, errs *ValidationErrors) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Please include a valid email")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Please include a valid email")
	}
}

// SplitSkills turns the comma-delimited skills input into an ordered list,
// trimming whitespace and dropping empty segments.
func SplitSkills(skills string) []string {
	parts := strings.Split(skills, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
