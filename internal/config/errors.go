package config

import (
	"errors"
	"fmt"
)

// ErrorKind identifies which of the loader's failure modes occurred
type ErrorKind string

const (
	// KindIO means the configuration file could not be read
	KindIO ErrorKind = "io"
	// KindParse means the substituted text did not decode into a RouterConfig
	KindParse ErrorKind = "parse"
	// KindMissingPolicyField means a policy lacks a required value
	KindMissingPolicyField ErrorKind = "missing_policy_field"
	// KindMissingLLMField means an LLM lacks a required value
	KindMissingLLMField ErrorKind = "missing_llm_field"
)

// Error is implemented by every error the loader returns. The set of
// implementations is closed: IOError, ParseError, MissingPolicyFieldError
// and MissingLLMFieldError.
type Error interface {
	error
	Kind() ErrorKind
	configError()
}

// IOError reports that the configuration file could not be read
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to read config file %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
func (e *IOError) Kind() ErrorKind { return KindIO }
func (e *IOError) configError() {}

// ParseError reports that the configuration text is not valid YAML or does
// not have the expected shape. Line and Column are 1-based and zero when the
// position is unknown.
type ParseError struct {
	Line   int
	Column int
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Line > 0 {
		return fmt.Sprintf("failed to parse YAML config: line %d, column %d: %s", e.Line, e.Column, msg)
	}
	return "failed to parse YAML config: " + msg
}

func (e *ParseError) Unwrap() error { return e.Err }
func (e *ParseError) Kind() ErrorKind { return KindParse }
func (e *ParseError) configError() {}

// MissingPolicyFieldError reports a policy with an empty required field
type MissingPolicyFieldError struct {
	Policy string
	Field  string
}

func (e *MissingPolicyFieldError) Error() string {
	return fmt.Sprintf("policy '%s' is missing required field '%s'", e.Policy, e.Field)
}

func (e *MissingPolicyFieldError) Kind() ErrorKind { return KindMissingPolicyField }
func (e *MissingPolicyFieldError) configError() {}

// MissingLLMFieldError reports an LLM with an empty required field
type MissingLLMFieldError struct {
	LLM   string
	Field string
}

func (e *MissingLLMFieldError) Error() string {
	return fmt.Sprintf("llm '%s' is missing required field '%s'", e.LLM, e.Field)
}

func (e *MissingLLMFieldError) Kind() ErrorKind { return KindMissingLLMField }
func (e *MissingLLMFieldError) configError() {}

// KindOf returns the kind of the first loader error in err's chain
func KindOf(err error) (ErrorKind, bool) {
	var cfgErr Error
	if errors.As(err, &cfgErr) {
		return cfgErr.Kind(), true
	}
	return "", false
}
