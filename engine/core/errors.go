package core

import (
	"errors"
)

var (
	ErrSingularMatrix     = errors.New("matrix is singular (det == 0)")
	ErrDegenerateLookAt   = errors.New("look-at target coincides with the eye position")
	ErrNotAttached        = errors.New("renderer has no scene attached")
	ErrShaderCompile      = errors.New("shader compilation failed")
	ErrProgramLink        = errors.New("program link failed")
	ErrResourceCreation   = errors.New("graphics context returned no handle")
	ErrUnsupportedUniform = errors.New("value cannot be passed as a uniform")
	ErrAlreadyInitialized = errors.New("already initialized")
	ErrNotInitialized     = errors.New("not initialized")
	ErrInvalidNode        = errors.New("invalid scene node")
	ErrInvalidGeometry    = errors.New("invalid geometry data")
	ErrAssetNotFound      = errors.New("asset not found")
	ErrUnknown            = errors.New("unknown")
)
