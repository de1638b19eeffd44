package personalizer

import (
	"fmt"
	"sort"
	"strings"
)

type Strength string

const (
	Exceptional  Strength = "exceptional"
	Excellent    Strength = "excellent"
	Strong       Strength = "strong"
	Good         Strength = "good"
	Satisfactory Strength = "satisfactory"
)

func (s Strength) Valid() bool {
	switch s {
	case Exceptional, Excellent, Strong, Good, Satisfactory:
		return true
	}
	return false
}

// StudentInfo carries the facts a letter is personalized with.
type StudentInfo struct {
	Name              string   `json:"name"`
	TargetProgram     string   `json:"targetProgram"`
	Course            string   `json:"course"`
	Term              string   `json:"term"`
	Strength          Strength `json:"academicStrength"`
	CharacterWords    []string `json:"characterWords"`
	AcademicAnecdote  string   `json:"academicAnecdote"`
	CharacterAnecdote string   `json:"characterAnecdote"`
}

// ValidationError maps field names to what is wrong with them.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %s", name, e.Fields[name])
	}
	return "invalid student info: " + strings.Join(parts, "; ")
}

// Validate checks that every field is set, the strength level is known
// and exactly three non-empty character words are given.
func (s StudentInfo) Validate() error {
	fields := map[string]string{}

	required := []struct {
		name, value string
	}{
		{"name", s.Name},
		{"targetProgram", s.TargetProgram},
		{"course", s.Course},
		{"term", s.Term},
		{"academicAnecdote", s.AcademicAnecdote},
		{"characterAnecdote", s.CharacterAnecdote},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			fields[r.name] = "is required"
		}
	}

	switch {
	case s.Strength == "":
		fields["academicStrength"] = "is required"
	case !s.Strength.Valid():
		fields["academicStrength"] = fmt.Sprintf("must be one of %s, %s, %s, %s, %s",
			Exceptional, Excellent, Strong, Good, Satisfactory)
	}

	if len(s.CharacterWords) != 3 {
		fields["characterWords"] = fmt.Sprintf("must contain exactly 3 words, got %d", len(s.CharacterWords))
	} else {
		for _, w := range s.CharacterWords {
			if strings.TrimSpace(w) == "" {
				fields["characterWords"] = "words must not be empty"
				break
			}
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
