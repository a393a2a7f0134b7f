package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeInactive   = errors.New("employee is not active")
	ErrEmailAlreadyUsed   = errors.New("email is already used by another employee")
	ErrEmployeeCodeExists = errors.New("employee code already exists")
	ErrFaceNotRegistered  = errors.New("employee has no enrolled face")
)
