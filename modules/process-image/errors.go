package processimage

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingInput - 이미지 또는 배경 설명 누락 (400)
	ErrMissingInput = errors.New("missing input")
	// ErrInvalidInput - 디코딩 불가능한 입력 (400)
	ErrInvalidInput = errors.New("invalid input")
	// ErrGenerationFailure - 다운스트림 실패 또는 빈 결과 (500)
	ErrGenerationFailure = errors.New("generation failure")
	// ErrNoImageGenerated - 응답에 inline 이미지 파트 없음. 재시도하지 않음.
	ErrNoImageGenerated = fmt.Errorf("%w: no image generated in response", ErrGenerationFailure)
)

// ValidationError carries the client-facing message for a rejected input.
type ValidationError struct {
	Field   string
	Message string
	Err     error // ErrMissingInput | ErrInvalidInput
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func missing(field, message string) error {
	return &ValidationError{Field: field, Message: message, Err: ErrMissingInput}
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message, Err: ErrInvalidInput}
}

// GenerationError wraps a transport or service failure from the downstream
// model. The cause is for logs only.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: generation failed: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() []error {
	return []error{ErrGenerationFailure, e.Err}
}
