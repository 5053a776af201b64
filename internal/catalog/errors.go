package catalog

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed catalog or permissions call.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindAlreadyExists
	KindEntityNotFound
	KindAccessDenied
	KindInvalidInput
	KindInternalService
	KindOperationTimeout
	KindThrottling
	KindConcurrentModification
	KindResourceLimitExceeded
)

var kindNames = map[ErrorKind]string{
	KindUnknown:                "unknown",
	KindAlreadyExists:          "already_exists",
	KindEntityNotFound:         "entity_not_found",
	KindAccessDenied:           "access_denied",
	KindInvalidInput:           "invalid_input",
	KindInternalService:        "internal_service",
	KindOperationTimeout:       "operation_timeout",
	KindThrottling:             "throttling",
	KindConcurrentModification: "concurrent_modification",
	KindResourceLimitExceeded:  "resource_limit_exceeded",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// codeKinds maps service error codes to kinds. Codes not listed are
// KindUnknown.
var codeKinds = map[string]ErrorKind{
	"AlreadyExistsException":               KindAlreadyExists,
	"EntityNotFoundException":              KindEntityNotFound,
	"AccessDeniedException":                KindAccessDenied,
	"InvalidInputException":                KindInvalidInput,
	"InternalServiceException":             KindInternalService,
	"OperationTimeoutException":            KindOperationTimeout,
	"ThrottlingException":                  KindThrottling,
	"TooManyRequestsException":             KindThrottling,
	"ConcurrentModificationException":      KindConcurrentModification,
	"ResourceNumberLimitExceededException": KindResourceLimitExceeded,
}

// KindFromCode maps a service error code to its kind.
func KindFromCode(code string) ErrorKind {
	return codeKinds[code]
}

// Error is returned by Target implementations when the remote call fails.
type Error struct {
	Op      Operation
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) ErrorKind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

// IsAlreadyExists reports whether err is an already-exists failure.
func IsAlreadyExists(err error) bool {
	return KindOf(err) == KindAlreadyExists
}

// Failure is one rejected item of a batch call.
type Failure struct {
	ID      string `json:"id,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// Kind classifies the failure's error code.
func (f Failure) Kind() ErrorKind {
	return KindFromCode(f.Code)
}
