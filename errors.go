package roster

import "github.com/goliatone/go-errors"

const (
	TextCodeEmptyPassword      = "auth_empty_password"
	TextCodePasswordTooLong    = "auth_password_too_long"
	TextCodePasswordMismatch   = "auth_password_mismatch"
	TextCodeInvalidCredentials = "auth_invalid_credentials"
	TextCodeInactiveAccount    = "auth_inactive_account"
	TextCodeTokenExpired       = "auth_token_expired"
	TextCodeTokenMalformed     = "auth_token_malformed"
	TextCodeTokenRevoked       = "auth_token_revoked"
	TextCodeAuthRequired       = "authz_credentials_required"
	TextCodeAuthzDenied        = "authz_denied"
	TextCodeEmailNotAllowed    = "register_email_not_allowed"
	TextCodeEmailTaken         = "register_email_taken"
	TextCodeUnknownTeam        = "register_unknown_team"
)

// Is and As are re-exported so callers match sentinels without importing
// both error packages.
var (
	Is = errors.Is
	As = errors.As
)

// ErrNoEmptyString is returned when hashing an empty password.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(errors.CodeBadRequest)

// ErrPasswordTooLong is returned when a password exceeds bcrypt's 72 byte
// input limit.
var ErrPasswordTooLong = errors.New("password must not exceed 72 bytes", errors.CategoryValidation).
	WithTextCode(TextCodePasswordTooLong).
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword is returned when a password does not match
// its stored hash.
var ErrMismatchedHashAndPassword = errors.New("password does not match", errors.CategoryAuth).
	WithTextCode(TextCodePasswordMismatch).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidCredentials is returned for unknown emails and wrong passwords
// alike, so login failures do not leak which of the two it was.
var ErrInvalidCredentials = errors.New("invalid email or password", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrInactiveAccount is returned when a deactivated member authenticates
// with otherwise correct credentials.
var ErrInactiveAccount = errors.New("account is inactive", errors.CategoryAuthz).
	WithTextCode(TextCodeInactiveAccount).
	WithCode(errors.CodeForbidden)

// ErrTokenExpired is returned when a token is past its expiry.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned for tokens that fail signature, shape or
// token-type checks.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrTokenRevoked is returned for refresh tokens found in the blacklist.
var ErrTokenRevoked = errors.New("token has been revoked", errors.CategoryAuth).
	WithTextCode(TextCodeTokenRevoked).
	WithCode(errors.CodeUnauthorized)

// ErrAuthenticationRequired is returned when a guarded action is attempted
// without usable claims.
var ErrAuthenticationRequired = errors.New("authentication required", errors.CategoryAuth).
	WithTextCode(TextCodeAuthRequired).
	WithCode(errors.CodeUnauthorized)

// ErrAuthorizationDenied is returned when valid claims fail the rule for
// the attempted action.
var ErrAuthorizationDenied = errors.New("you do not have permission to perform this action", errors.CategoryAuthz).
	WithTextCode(TextCodeAuthzDenied).
	WithCode(errors.CodeForbidden)

// ErrEmailNotAllowed is returned when a registration email is not on the
// whitelist.
var ErrEmailNotAllowed = errors.New("email is not authorized to register", errors.CategoryValidation).
	WithTextCode(TextCodeEmailNotAllowed).
	WithCode(errors.CodeBadRequest)

// ErrEmailTaken is returned when a registration email already belongs to a
// member.
var ErrEmailTaken = errors.New("a member with this email already exists", errors.CategoryValidation).
	WithTextCode(TextCodeEmailTaken).
	WithCode(errors.CodeBadRequest)

// ErrUnknownTeam is returned when a registration names a team that does
// not exist.
var ErrUnknownTeam = errors.New("team does not exist", errors.CategoryValidation).
	WithTextCode(TextCodeUnknownTeam).
	WithCode(errors.CodeBadRequest)
