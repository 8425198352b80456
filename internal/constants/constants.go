package constants

const (
	// MinPasswordLength is the minimum accepted password length at signup.
	MinPasswordLength = 8

	// MaxExtractedActionItems caps how many action items a single extraction
	// call may produce.
	MaxExtractedActionItems = 20

	// MaxListLimit bounds the limit query parameter on list endpoints.
	MaxListLimit = 200
)
