package fireauth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode is a provider-defined rejection code taken from the error
// response body. The set below covers the documented codes; anything else
// passes through verbatim.
type ErrorCode string

const (
	// CodeOperationNotAllowed: the operation is disabled for this project.
	CodeOperationNotAllowed ErrorCode = "OPERATION_NOT_ALLOWED"
	// CodeTooManyAttempts: requests from this device were blocked due to
	// unusual activity.
	CodeTooManyAttempts ErrorCode = "TOO_MANY_ATTEMPTS_TRY_LATER"
	// CodeInvalidAPIKey: the API key is not valid for the project.
	CodeInvalidAPIKey ErrorCode = "INVALID_API_KEY"
	// CodeInvalidCustomToken: the custom token format is incorrect or the
	// token is expired or badly signed.
	CodeInvalidCustomToken ErrorCode = "INVALID_CUSTOM_TOKEN"
	// CodeInvalidIDToken: the identity token is no longer valid.
	CodeInvalidIDToken ErrorCode = "INVALID_ID_TOKEN"
	// CodeInvalidRefreshToken: the refresh token is invalid.
	CodeInvalidRefreshToken ErrorCode = "INVALID_REFRESH_TOKEN"
	// CodeInvalidGrantType: the grant type specified is invalid.
	CodeInvalidGrantType ErrorCode = "INVALID_GRANT_TYPE"
	// CodeInvalidPassword: the password is wrong or the user has none.
	CodeInvalidPassword ErrorCode = "INVALID_PASSWORD"
	// CodeInvalidIDPResponse: the supplied IdP credential is malformed or
	// expired.
	CodeInvalidIDPResponse ErrorCode = "INVALID_IDP_RESPONSE"
	// CodeInvalidEmail: the email address is badly formatted.
	CodeInvalidEmail ErrorCode = "INVALID_EMAIL"
	// CodeInvalidLoginCredentials: the supplied credential is malformed or
	// expired (newer projects return this instead of the specific codes).
	CodeInvalidLoginCredentials ErrorCode = "INVALID_LOGIN_CREDENTIALS"
	// CodeCredentialMismatch: the custom token belongs to another project.
	CodeCredentialMismatch ErrorCode = "CREDENTIAL_MISMATCH"
	// CodeCredentialTooOld: the user must sign in again before this
	// operation is allowed.
	CodeCredentialTooOld ErrorCode = "CREDENTIAL_TOO_OLD_LOGIN_AGAIN"
	// CodeTokenExpired: the credential is no longer valid server-side.
	CodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
	// CodeUserDisabled: the account was disabled by an administrator.
	CodeUserDisabled ErrorCode = "USER_DISABLED"
	// CodeUserNotFound: no user matches the credential, likely deleted.
	CodeUserNotFound ErrorCode = "USER_NOT_FOUND"
	// CodeMissingRefreshToken: no refresh token was provided.
	CodeMissingRefreshToken ErrorCode = "MISSING_REFRESH_TOKEN"
	// CodeEmailExists: the email address is already in use.
	CodeEmailExists ErrorCode = "EMAIL_EXISTS"
	// CodeEmailNotFound: no user record matches this email.
	CodeEmailNotFound ErrorCode = "EMAIL_NOT_FOUND"
	// CodeWeakPassword: the password must be at least 6 characters.
	CodeWeakPassword ErrorCode = "WEAK_PASSWORD"
	// CodeFederatedUserAlreadyLinked: the IdP credential is already bound
	// to a different account.
	CodeFederatedUserAlreadyLinked ErrorCode = "FEDERATED_USER_ID_ALREADY_LINKED"
	// CodeExpiredOOBCode: the out-of-band action code has expired.
	CodeExpiredOOBCode ErrorCode = "EXPIRED_OOB_CODE"
	// CodeInvalidOOBCode: the action code is malformed, expired or used.
	CodeInvalidOOBCode ErrorCode = "INVALID_OOB_CODE"
)

// TransportError reports a failure to complete the HTTP round trip. The
// request may or may not have reached the provider; the core never retries.
type TransportError struct {
	Operation string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a well-formed rejection returned by the provider.
type APIError struct {
	Operation  string
	StatusCode int
	Code       ErrorCode
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: remote rejected (%d) %s: %s", e.Operation, e.StatusCode, e.Code, e.Message)
}

// DecodeError reports a response body that did not match the expected
// shape. It surfaces a defect (ours or the provider's) and is never retried.
type DecodeError struct {
	Operation string
	Err       error
	Body      []byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: failed to decode response: %v", e.Operation, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// RefreshError wraps any error that arose during the implicit token refresh
// step. When a call fails with a RefreshError the target operation was never
// invoked and the caller's session is unchanged (still expired).
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("refreshing identity token: %v", e.Err)
}

func (e *RefreshError) Unwrap() error { return e.Err }

// SessionRevoked reports whether err means the session lineage is dead and
// the user must authenticate again. All other rejections leave the session
// usable: retain it and branch on the operation-specific code.
func SessionRevoked(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Code {
	case CodeInvalidRefreshToken, CodeTokenExpired, CodeUserNotFound,
		CodeUserDisabled, CodeMissingRefreshToken, CodeCredentialTooOld:
		return true
	}
	return false
}

// errorResponse is the standard error envelope of both the identity toolkit
// and secure token endpoints.
type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// classifyAPIError maps a non-2xx response body onto the error taxonomy.
// The provider packs the code into the message field, optionally followed
// by " : human readable detail".
func classifyAPIError(operation string, statusCode int, body []byte) error {
	var envelope errorResponse
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error.Message == "" {
		return &DecodeError{
			Operation: operation,
			Err:       fmt.Errorf("unrecognized error response (status %d)", statusCode),
			Body:      body,
		}
	}

	code, message := splitErrorMessage(envelope.Error.Message)
	return &APIError{
		Operation:  operation,
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

func splitErrorMessage(message string) (ErrorCode, string) {
	code, detail, found := strings.Cut(message, " : ")
	if !found {
		return ErrorCode(strings.TrimSpace(message)), message
	}
	return ErrorCode(strings.TrimSpace(code)), detail
}
