package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// MaxLines is the hard cap on how many lines of a buffer are transmitted.
const MaxLines = 50

// GenericFailureMessage is reported when a failed response carries nothing usable.
const GenericFailureMessage = "unknown error contacting the analysis service"

// Request is the payload for a single analysis attempt.
type Request struct {
	ID         string `json:"-"`
	LogContent string `json:"logContent"`
}

// NewRequest builds a Request from raw buffer text, applying the line cap.
func NewRequest(buffer string) Request {
	return Request{LogContent: TruncateLines(buffer, MaxLines)}
}

// Diagnosis is the successful result of an analysis.
type Diagnosis struct {
	Explanation string  `json:"explanation" yaml:"explanation"`
	Suggestion  *string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// HasSuggestion reports whether the service returned a suggested fix.
func (d Diagnosis) HasSuggestion() bool {
	return d.Suggestion != nil
}

// SuggestionText returns the suggestion or an empty string when absent.
func (d Diagnosis) SuggestionText() string {
	if d.Suggestion == nil {
		return ""
	}
	return *d.Suggestion
}

// OutcomeKind discriminates Outcome.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota + 1
	OutcomeFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// FailureKind tells transport failures apart from service failures.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureTransport
	FailureService
)

func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailureService:
		return "service"
	default:
		return "none"
	}
}

// Outcome is either a Diagnosis or a failure message, never both.
type Outcome struct {
	Kind      OutcomeKind
	Diagnosis Diagnosis
	Failure   FailureKind
	Message   string
}

// Succeeded wraps a diagnosis.
func Succeeded(d Diagnosis) Outcome {
	return Outcome{Kind: OutcomeSuccess, Diagnosis: d}
}

// Failed wraps a failure reason.
func Failed(kind FailureKind, message string) Outcome {
	return Outcome{Kind: OutcomeFailure, Failure: kind, Message: message}
}

// IsSuccess reports whether the outcome carries a diagnosis.
func (o Outcome) IsSuccess() bool {
	return o.Kind == OutcomeSuccess
}

// Classify turns the result of Analyzer.Analyze into an Outcome.
func Classify(d Diagnosis, err error) Outcome {
	if err == nil {
		return Succeeded(d)
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return Failed(FailureService, svcErr.Message)
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return Failed(FailureTransport, transportErr.Error())
	}

	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = GenericFailureMessage
	}
	return Failed(FailureTransport, msg)
}

// ServiceError is returned when the service answered but the answer is a failure.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("analysis service returned status %d: %s", e.Status, e.Message)
}

// TransportError is returned when no usable response reached the client.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return "transport failure"
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
