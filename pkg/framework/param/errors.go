package param

import (
	"errors"
	"strconv"
)

// ErrorCode is the result of a control update or realtime apply.
// Every code except Success is usable as an error.
type ErrorCode int

// Error codes. The first block mirrors the status codes of the inference
// library and the engine; the second block is raised by the controller.
const (
	Success ErrorCode = iota
	FileOpenError
	FileTooSmall
	FileTooLarge
	InvalidFileSize
	ConfigSyntaxError
	SpeakerIDOutOfRange
	InvalidPitchCorrectionType
	ModelNotLoaded
	ResamplerNotReady
	GainNotReady
	UnknownError

	ValueKindMismatch
	ValueOutOfRange
	ReadOnlyParameter
	EditInProgress
)

var codeNames = [...]string{
	Success:                    "success",
	FileOpenError:              "file open error",
	FileTooSmall:               "file too small",
	FileTooLarge:               "file too large",
	InvalidFileSize:            "invalid file size",
	ConfigSyntaxError:          "config syntax error",
	SpeakerIDOutOfRange:        "speaker id out of range",
	InvalidPitchCorrectionType: "invalid pitch correction type",
	ModelNotLoaded:             "model not loaded",
	ResamplerNotReady:          "resampler not ready",
	GainNotReady:               "gain not ready",
	UnknownError:               "unknown error",
	ValueKindMismatch:          "value kind mismatch",
	ValueOutOfRange:            "value out of range",
	ReadOnlyParameter:          "read-only parameter",
	EditInProgress:             "edit in progress",
}

// String returns a human readable description
func (c ErrorCode) String() string {
	if c >= 0 && int(c) < len(codeNames) {
		return codeNames[c]
	}
	return "error code " + strconv.Itoa(int(c))
}

// Error implements the error interface
func (c ErrorCode) Error() string {
	return c.String()
}

// CodeOf extracts the ErrorCode carried by err. A nil error is Success and
// an error without a code is UnknownError.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return Success
	}
	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}
	return UnknownError
}
