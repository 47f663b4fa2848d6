package util

import "errors"

var (
	ErrUserExists         = errors.New("user with this email or username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrHuntNotFound       = errors.New("hunt not found")
	ErrHuntNoClues        = errors.New("hunt has no clues")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrActiveSession      = errors.New("active session already exists for this hunt")
	ErrSessionNotFound    = errors.New("active game session not found")
	ErrInvalidHintIndex   = errors.New("invalid hint index")
	ErrHintAlreadyUsed    = errors.New("hint already used")
	ErrFileNotFound       = errors.New("file not found")
)
