package app

import "errors"

// Sentinel errors for every failure the HTTP layer reports. Messages are
// shown to end users verbatim, so they are full sentences where the frontend
// displays them.
var (
	ErrEmailAndPasswordRequired = errors.New("Email and password are required")
	ErrInvalidEmail             = errors.New("Invalid email address")
	ErrEmailAlreadyRegistered   = errors.New("Email already registered")

	// ErrInvalidCredentials deliberately does not distinguish "no such
	// user" from "wrong password".
	ErrInvalidCredentials = errors.New("Invalid email or password")

	// ErrAccountBlocked is the login-time rejection; ErrUserBlocked is the
	// blocked-user gate on mutating endpoints and carries the blocked
	// marker in responses.
	ErrAccountBlocked = errors.New("Your account has been blocked.")
	ErrUserBlocked    = errors.New("Your account has been blocked. Please contact the admin.")

	ErrUsernameAndPasswordRequired = errors.New("Username and password are required")
	ErrInvalidAdminCredentials     = errors.New("Invalid admin credentials")
	ErrAllFieldsRequired           = errors.New("All fields required")
	ErrCurrentPasswordIncorrect    = errors.New("Current password is incorrect")

	ErrUserNotFound     = errors.New("User not found")
	ErrSessionNotFound  = errors.New("Chat session not found")
	ErrDocumentNotFound = errors.New("Document not found")
	ErrNoFileData       = errors.New("No file data available")

	ErrEmailRequired          = errors.New("email is required")
	ErrUserEmailRequired      = errors.New("user_email is required")
	ErrRoleAndContentRequired = errors.New("role and content are required")
	ErrInvalidRole            = errors.New("role must be 'user' or 'assistant'")
	ErrNoFileProvided         = errors.New("No file provided")
	ErrNoFileSelected         = errors.New("No file selected")
)
