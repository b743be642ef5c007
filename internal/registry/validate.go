package registry

import (
	"fmt"
	"regexp"
	"strings"
)

// namePattern matches valid kebab-case names: lowercase, start with letter, hyphens allowed.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(?:-[a-z0-9]+)*$`)

// ValidationError represents a single validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// ValidationResult holds validation errors and warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []string
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// AddError appends a validation error.
func (r *ValidationResult) AddError(field, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// AddWarning appends a validation warning.
func (r *ValidationResult) AddWarning(message string) {
	r.Warnings = append(r.Warnings, message)
}

// Error implements the error interface.
func (r *ValidationResult) Error() string {
	if len(r.Errors) == 0 {
		return ""
	}

	var messages []string
	for _, err := range r.Errors {
		messages = append(messages, err.Error())
	}

	return fmt.Sprintf("validation failed with %d error(s):\n  - %s",
		len(r.Errors), strings.Join(messages, "\n  - "))
}

// ValidateRegistry validates a parsed registry document beyond the hard
// version requirement: names must be kebab-case and unique, skill file
// manifests must carry the required descriptor, and requires/utils edges
// must point at entries that exist in the same document. Cross-registry
// references are legal and not checked here.
func ValidateRegistry(r *Registry) *ValidationResult {
	result := &ValidationResult{}

	if r.Name == "" {
		result.AddError("name", "is required")
	} else if !namePattern.MatchString(r.Name) {
		result.AddError("name", "must be kebab-case (lowercase, hyphens, start with letter)")
	}

	if r.Version == "" {
		result.AddError("version", "is required")
	}

	if len(r.Skills) == 0 && len(r.Agents) == 0 {
		result.AddWarning("registry has no skills or agents")
	}

	utils := make(map[string]bool, len(r.Utils))
	for _, u := range r.Utils {
		utils[u] = true
	}

	skillNames := make(map[string]int)
	for i, s := range r.Skills {
		fieldPrefix := fmt.Sprintf("skills[%d]", i)

		if s.Name == "" {
			result.AddError(fieldPrefix, "name is required")
		} else {
			if !namePattern.MatchString(s.Name) {
				result.AddError(fieldPrefix, fmt.Sprintf("name %q must be kebab-case", s.Name))
			}
			if prev, ok := skillNames[s.Name]; ok {
				result.AddError(fieldPrefix, fmt.Sprintf("duplicate skill name %q (first at index %d)", s.Name, prev))
			} else {
				skillNames[s.Name] = i
			}
		}

		if !hasRequiredFile(s.Files.Skill) {
			result.AddError(fieldPrefix, fmt.Sprintf("files.skill must include %s", RequiredSkillFile))
		}

		if s.Description == "" {
			result.AddWarning(fmt.Sprintf("%s (%s): missing description", fieldPrefix, s.Name))
		}

		for _, u := range s.Utils {
			if !utils[u] {
				result.AddWarning(fmt.Sprintf("%s (%s): util %q not published by this registry", fieldPrefix, s.Name, u))
			}
		}
	}

	// Requires edges are checked after all names are known.
	for i, s := range r.Skills {
		for _, req := range s.Requires {
			if _, ok := skillNames[req]; !ok {
				result.AddWarning(fmt.Sprintf("skills[%d] (%s): requires %q not found in this registry", i, s.Name, req))
			}
		}
	}

	agentNames := make(map[string]int)
	for i, a := range r.Agents {
		fieldPrefix := fmt.Sprintf("agents[%d]", i)

		if a.Name == "" {
			result.AddError(fieldPrefix, "name is required")
		} else {
			if !namePattern.MatchString(a.Name) {
				result.AddError(fieldPrefix, fmt.Sprintf("name %q must be kebab-case", a.Name))
			}
			if prev, ok := agentNames[a.Name]; ok {
				result.AddError(fieldPrefix, fmt.Sprintf("duplicate agent name %q (first at index %d)", a.Name, prev))
			} else {
				agentNames[a.Name] = i
			}
		}

		if len(a.Files) == 0 {
			result.AddError(fieldPrefix, "files is required")
		}

		for _, skillName := range a.Skills {
			if _, ok := skillNames[skillName]; !ok {
				result.AddWarning(fmt.Sprintf("%s (%s): skill %q not found in this registry", fieldPrefix, a.Name, skillName))
			}
		}
	}

	return result
}

func hasRequiredFile(files []string) bool {
	for _, f := range files {
		if f == RequiredSkillFile {
			return true
		}
	}
	return false
}
