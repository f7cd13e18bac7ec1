package services

import "errors"

var (
	// Auth.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user with this email already exists")

	// Generation.
	ErrNotEnoughEntrants     = errors.New("category needs at least two registrations")
	ErrPlayoffsAlreadyExist  = errors.New("playoff bracket already generated for this category")
	ErrNoQualifiers          = errors.New("no qualifiers could be determined for this category")
	ErrDrawRegistrationStray = errors.New("registration does not belong to this category")

	// Scores.
	ErrInvalidScorePayload = errors.New("invalid score payload")
	ErrMatchNotEditable    = errors.New("match teams are not resolved yet")

	// Storage.
	ErrLogoStorageDisabled = errors.New("logo storage is not configured")
)
