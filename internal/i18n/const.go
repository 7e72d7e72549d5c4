package i18n

// Common errors
var (
	ErrNotFound       = NewErrorWithCode("ErrorResourceNotFound", ErrorNotFound)
	ErrUnauthorized   = NewErrorWithCode("ErrorUnauthorized", ErrorUnauthorized)
	ErrForbidden      = NewErrorWithCode("ErrorForbidden", ErrorForbidden)
	ErrBadRequest     = NewErrorWithCode("ErrorBadRequest", ErrorBadRequest)
	ErrInternalServer = NewErrorWithCode("ErrorInternalServer", ErrorInternalServer)
)

// Authentication errors. Invalid credentials deliberately share one
// message for users and enterprises to avoid account enumeration.
var (
	ErrorInvalidCredentials = NewErrorWithCode("ErrorInvalidCredentials", ErrorUnauthorized)
	ErrorSessionExpired     = NewErrorWithCode("ErrorSessionExpired", ErrorUnauthorized)
)

// User related errors
var (
	ErrorUserNotFound           = NewErrorWithCode("ErrorUserNotFound", ErrorNotFound)
	ErrorUserRequiredFields     = NewErrorWithCode("ErrorUserRequiredFields", ErrorBadRequest)
	ErrorEmailExists            = NewErrorWithCode("ErrorEmailExists", ErrorConflict)
	ErrorUserGroupWrongOwner    = NewErrorWithCode("ErrorUserGroupWrongOwner", ErrorBadRequest)
	ErrorEnterpriseRefRequired  = NewErrorWithCode("ErrorEnterpriseRefRequired", ErrorBadRequest)
)

// Enterprise related errors
var (
	ErrorEnterpriseNotFound       = NewErrorWithCode("ErrorEnterpriseNotFound", ErrorNotFound)
	ErrorEnterpriseRequiredFields = NewErrorWithCode("ErrorEnterpriseRequiredFields", ErrorBadRequest)
	ErrorCNPJExists               = NewErrorWithCode("ErrorCNPJExists", ErrorConflict)
	ErrorInvalidCNPJ              = NewErrorWithCode("ErrorInvalidCNPJ", ErrorBadRequest)
)

// Group related errors
var (
	ErrorGroupNotFound       = NewErrorWithCode("ErrorGroupNotFound", ErrorNotFound)
	ErrorGroupRequiredFields = NewErrorWithCode("ErrorGroupRequiredFields", ErrorBadRequest)
	ErrorGroupNameExists     = NewErrorWithCode("ErrorGroupNameExists", ErrorConflict)
	ErrorUnknownCapability   = NewErrorWithCode("ErrorUnknownCapability", ErrorBadRequest)
)

// Release and period errors
var (
	ErrorReleaseNotFound       = NewErrorWithCode("ErrorReleaseNotFound", ErrorNotFound)
	ErrorReleaseRequiredFields = NewErrorWithCode("ErrorReleaseRequiredFields", ErrorBadRequest)
	ErrorPeriodNotFound        = NewErrorWithCode("ErrorPeriodNotFound", ErrorNotFound)
	ErrorPeriodRequiredFields  = NewErrorWithCode("ErrorPeriodRequiredFields", ErrorBadRequest)
	ErrorPeriodClosed          = NewErrorWithCode("ErrorPeriodClosed", ErrorBadRequest)
	ErrorPeriodNotEmpty        = NewErrorWithCode("ErrorPeriodNotEmpty", ErrorBadRequest)
)

// Success messages
const (
	SuccessLogin              = "SuccessLogin"
	SuccessLogout             = "SuccessLogout"
	SuccessUserCreated        = "SuccessUserCreated"
	SuccessEnterpriseCreated  = "SuccessEnterpriseCreated"
	SuccessGroupCreated       = "SuccessGroupCreated"
	SuccessGroupDeleted       = "SuccessGroupDeleted"
	SuccessReleaseCreated     = "SuccessReleaseCreated"
	SuccessReleaseUpdated     = "SuccessReleaseUpdated"
	SuccessReleaseDeleted     = "SuccessReleaseDeleted"
	SuccessPeriodCreated      = "SuccessPeriodCreated"
	SuccessPeriodUpdated      = "SuccessPeriodUpdated"
	SuccessPeriodDeleted      = "SuccessPeriodDeleted"
	SuccessOperationCompleted = "SuccessOperationCompleted"
)
