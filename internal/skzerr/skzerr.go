// Package skzerr provides structured error types for skz.
package skzerr

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error codes for skz operations.
const (
	// Config errors
	CodeConfigNotFound = "CONFIG_001" // No skz.json in any known location
	CodeConfigParse    = "CONFIG_002" // Config file exists but is not valid JSON
	CodeConfigExists   = "CONFIG_003" // init would overwrite an existing config

	// Registry errors
	CodeRegistryFetch      = "REGISTRY_001" // registry.json unreachable
	CodeRegistryParse      = "REGISTRY_002" // registry.json is not valid JSON
	CodeRegistryVersion    = "REGISTRY_003" // registry document missing version
	CodeFileNotFound       = "REGISTRY_004" // Requested file absent from registry
	CodeToolingUnavailable = "REGISTRY_005" // Fetch tooling missing or unauthenticated
	CodeFetchFailed        = "REGISTRY_006" // Non-2xx response with status code

	// Skill errors
	CodeSkillNotFound       = "SKILL_001" // Name matched nothing
	CodeRequiredFileMissing = "SKILL_002" // Core descriptor fetch failed

	// Agent errors
	CodeAgentNotFound     = "AGENT_001" // Agent name matched nothing
	CodeAgentNotInstalled = "AGENT_002" // Agent file absent from agents dir

	// IO errors
	CodeIORead  = "IO_001" // Read error
	CodeIOWrite = "IO_002" // Write error
)

// Error is the structured error type for skz operations.
type Error struct {
	Code        string         `json:"code"`                  // Error code (e.g., "REGISTRY_004")
	Message     string         `json:"message"`               // Human-readable message
	Details     map[string]any `json:"details,omitempty"`     // Context (path, registry, status, etc.)
	Remediation string         `json:"remediation,omitempty"` // What the user can do about it
	Cause       error          `json:"-"`                     // Wrapped error (not serialized)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// WithRemediation sets the remediation hint.
func (e *Error) WithRemediation(hint string) *Error {
	e.Remediation = hint
	return e
}

// MarshalJSON implements json.Marshaler with cause error message.
func (e *Error) MarshalJSON() ([]byte, error) {
	type alias Error
	aux := struct {
		*alias
		CauseMsg string `json:"cause,omitempty"`
	}{
		alias: (*alias)(e),
	}
	if e.Cause != nil {
		aux.CauseMsg = e.Cause.Error()
	}
	return json.Marshal(aux)
}

// New creates a new Error.
func New(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new Error with formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with an Error.
func Wrap(code, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// --- Config Errors ---

// ConfigNotFound creates an error for a project with no skz config.
func ConfigNotFound() *Error {
	return New(CodeConfigNotFound, "no skz.json found in this project").
		WithRemediation("run 'skz init' to create one")
}

// ConfigParse creates an error for an unreadable config file.
func ConfigParse(path string, err error) *Error {
	return Wrap(CodeConfigParse, fmt.Sprintf("config %s is not valid JSON", path), err).
		WithDetail("path", path)
}

// ConfigExists creates an error for init over an existing config.
func ConfigExists(path string) *Error {
	return Newf(CodeConfigExists, "skz is already initialized (found %s)", path).
		WithDetail("path", path)
}

// --- Registry Errors ---

// RegistryFetch creates an error for an unreachable registry.
func RegistryFetch(registryURL string, err error) *Error {
	return Wrap(CodeRegistryFetch, fmt.Sprintf("fetching registry %s", registryURL), err).
		WithDetail("registry", registryURL)
}

// RegistryParse creates an error for an unparsable registry document.
func RegistryParse(registryURL string, err error) *Error {
	return Wrap(CodeRegistryParse, fmt.Sprintf("parsing registry %s", registryURL), err).
		WithDetail("registry", registryURL)
}

// RegistryVersion creates an error for a pre-v2 registry document.
func RegistryVersion(registryURL string) *Error {
	return Newf(CodeRegistryVersion, "registry %s has no version field: registry v2 format required", registryURL).
		WithDetail("registry", registryURL)
}

// FileNotFound creates an error for a file absent from a registry.
func FileNotFound(path, registryURL string) *Error {
	return Newf(CodeFileNotFound, "file %s not found in registry %s", path, registryURL).
		WithDetail("path", path).
		WithDetail("registry", registryURL)
}

// ToolingUnavailable creates an error for missing or unauthenticated fetch tooling.
func ToolingUnavailable(message, remediation string) *Error {
	return New(CodeToolingUnavailable, message).
		WithRemediation(remediation)
}

// FetchFailed creates an error for a non-2xx registry response.
func FetchFailed(path, registryURL string, status int) *Error {
	return Newf(CodeFetchFailed, "fetching %s from %s failed with status %d", path, registryURL, status).
		WithDetail("path", path).
		WithDetail("registry", registryURL).
		WithDetail("status", status)
}

// --- Skill Errors ---

// SkillNotFound creates an error for a pattern that matched nothing.
func SkillNotFound(pattern string, available []string) *Error {
	e := Newf(CodeSkillNotFound, "no skill matches %q", pattern).
		WithDetail("pattern", pattern)
	if len(available) > 0 {
		e.Remediation = "available skills: " + strings.Join(available, ", ")
	}
	return e
}

// RequiredFileMissing creates an error for a failed core descriptor fetch.
func RequiredFileMissing(skill, path, registryURL string, err error) *Error {
	return Wrap(CodeRequiredFileMissing, fmt.Sprintf("skill %s: required file %s could not be fetched from %s", skill, path, registryURL), err).
		WithDetail("skill", skill).
		WithDetail("path", path).
		WithDetail("registry", registryURL)
}

// --- Agent Errors ---

// AgentNotFound creates an error for an agent pattern that matched nothing.
func AgentNotFound(pattern string, available []string) *Error {
	e := Newf(CodeAgentNotFound, "no agent matches %q", pattern).
		WithDetail("pattern", pattern)
	if len(available) > 0 {
		e.Remediation = "available agents: " + strings.Join(available, ", ")
	}
	return e
}

// AgentNotInstalled creates an error for an agent file absent from the project.
func AgentNotInstalled(name, dir string) *Error {
	return Newf(CodeAgentNotInstalled, "agent %q is not installed in %s", name, dir).
		WithDetail("agent", name).
		WithDetail("dir", dir)
}

// --- IO Errors ---

// IORead creates an error for read failures.
func IORead(path string, err error) *Error {
	return Wrap(CodeIORead, fmt.Sprintf("reading %s", path), err).
		WithDetail("path", path)
}

// IOWrite creates an error for write failures.
func IOWrite(path string, err error) *Error {
	return Wrap(CodeIOWrite, fmt.Sprintf("writing %s", path), err).
		WithDetail("path", path)
}

// HasCode checks if an error is an Error with the given code.
// It handles wrapped errors by unwrapping to find an Error.
func HasCode(err error, code string) bool {
	var serr *Error
	if errors.As(err, &serr) {
		return serr.Code == code
	}
	return false
}

// Code returns the error code if err is an Error, empty string otherwise.
// It handles wrapped errors by unwrapping to find an Error.
func Code(err error) string {
	var serr *Error
	if errors.As(err, &serr) {
		return serr.Code
	}
	return ""
}

// Remediation returns the remediation hint if err carries one.
func Remediation(err error) string {
	var serr *Error
	if errors.As(err, &serr) {
		return serr.Remediation
	}
	return ""
}
