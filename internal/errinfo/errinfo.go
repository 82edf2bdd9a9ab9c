package errinfo

import "strings"

// ErrorInfo is the structured failure surfaced to the user. Classification is
// by error code, never by searching message text.
type ErrorInfo struct {
	ErrorCode string   `json:"error_code"`
	Retryable bool     `json:"retryable"`
	Actions   []string `json:"actions,omitempty"`
	Detail    string   `json:"detail,omitempty"`
}

const (
	CodeTokenMissing        = "TOKEN_MISSING"
	CodeTokenInvalid        = "TOKEN_INVALID"
	CodeInsufficientCredits = "INSUFFICIENT_CREDITS"
	CodeRateLimited         = "RATE_LIMITED"
	CodeWorkspaceMissing    = "WORKSPACE_MISSING"
	CodeInterpreterFailed   = "INTERPRETER_FAILED"
	CodeEgressBlocked       = "EGRESS_BLOCKED"
	CodeGenerationFailed    = "GENERATION_FAILED"
)

const (
	ActionSetToken = "set_token"
	ActionRetry    = "retry"
	ActionUpgrade  = "upgrade_plan"
)

func TokenMissing() *ErrorInfo {
	return &ErrorInfo{
		ErrorCode: CodeTokenMissing,
		Retryable: false,
		Actions:   []string{ActionSetToken},
		Detail:    "no session token configured; run `codeforge token set`",
	}
}

func TokenInvalid() *ErrorInfo {
	return &ErrorInfo{
		ErrorCode: CodeTokenInvalid,
		Retryable: false,
		Actions:   []string{ActionSetToken},
		Detail:    "session token rejected and cleared; run `codeforge token set`",
	}
}

func InsufficientCredits(detail string) *ErrorInfo {
	return &ErrorInfo{
		ErrorCode: CodeInsufficientCredits,
		Retryable: false,
		Actions:   []string{ActionUpgrade},
		Detail:    detail,
	}
}

func RateLimited(detail string) *ErrorInfo {
	return &ErrorInfo{
		ErrorCode: CodeRateLimited,
		Retryable: true,
		Actions:   []string{ActionRetry},
		Detail:    detail,
	}
}

func WorkspaceMissing(detail string) *ErrorInfo {
	return &ErrorInfo{
		ErrorCode: CodeWorkspaceMissing,
		Retryable: false,
		Detail:    detail,
	}
}

func InterpreterFailed(detail string) *ErrorInfo {
	return &ErrorInfo{
		ErrorCode: CodeInterpreterFailed,
		Retryable: false,
		Detail:    detail,
	}
}

func EgressBlocked(detail string) *ErrorInfo {
	return &ErrorInfo{
		ErrorCode: CodeEgressBlocked,
		Retryable: false,
		Detail:    detail,
	}
}

func GenerationFailed(detail string) *ErrorInfo {
	return &ErrorInfo{
		ErrorCode: CodeGenerationFailed,
		Retryable: true,
		Actions:   []string{ActionRetry},
		Detail:    detail,
	}
}

// Message renders the single user-facing line for a failure.
func (e *ErrorInfo) Message() string {
	if e == nil {
		return ""
	}
	switch e.ErrorCode {
	case CodeTokenMissing:
		return "No session token set. Run `codeforge token set` to configure one."
	case CodeTokenInvalid:
		return "Session token is invalid and has been cleared. Run `codeforge token set` to configure a new one."
	case CodeInsufficientCredits:
		if e.Detail != "" {
			return "Insufficient credits: " + e.Detail
		}
		return "Insufficient credits."
	case CodeRateLimited:
		if e.Detail != "" {
			return "Rate limited: " + e.Detail
		}
		return "Rate limited. Try again shortly."
	case CodeWorkspaceMissing:
		if e.Detail != "" {
			return "No workspace available: " + e.Detail
		}
		return "No workspace available."
	case CodeInterpreterFailed:
		if e.Detail != "" {
			return "Local processing failed: " + e.Detail
		}
		return "Local processing failed."
	case CodeEgressBlocked:
		return "Request blocked: only the configured backend host is allowed."
	default:
		if strings.TrimSpace(e.Detail) != "" {
			return e.Detail
		}
		return "Generation failed."
	}
}
