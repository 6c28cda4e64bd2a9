package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the acting role is not permitted to perform the operation.
var ErrForbidden = errors.New("operation not permitted for role")

// ErrInvalidStatus indicates that a batch transition was requested from a
// state that does not allow it (verified and rejected are terminal).
var ErrInvalidStatus = errors.New("batch status does not allow this transition")
