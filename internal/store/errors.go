package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when a user insert violates the
	// unique e-mail constraint.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrProviderIDAlreadyExists is returned when a user insert violates the
	// unique provider id constraint.
	ErrProviderIDAlreadyExists = errors.New("provider id already exists")

	// ErrUserNotFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrUserNotFound = errors.New("user was not found")

	// ErrTaskNotFound is returned when a task with the given id does not
	// exist within the owner's scope.
	ErrTaskNotFound = errors.New("task was not found")

	// ErrSessionNotFound is returned when a session id is unknown or expired.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrBlobNotFound is returned when a blob does not exist.
	ErrBlobNotFound = errors.New("blob was not found")

	// ErrInvalidBlobSignature is returned when a signed blob URL does not
	// verify or has expired.
	ErrInvalidBlobSignature = errors.New("invalid or expired blob signature")

	// ErrLocalCredentialNotFound is returned by the client credential store
	// when nothing has been saved yet.
	ErrLocalCredentialNotFound = errors.New("local credential not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. an UPDATE without any SET clause).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a statement against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrConnectAborted is returned when the startup connection loop is
	// cancelled before a connection could be established.
	ErrConnectAborted = errors.New("database connection aborted")
)
