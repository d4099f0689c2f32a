package validation

import (
	"fmt"
	"strings"
	"unicode"

	"kidventure/internal/models"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateKidName checks if a kid display name is valid
func ValidateKidName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) > 50 {
		return ValidationError{Field: "name", Message: "name must be at most 50 characters"}
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return ValidationError{Field: "name", Message: "name contains invalid characters"}
		}
	}
	return nil
}

// ValidateAgeGroup checks if an age group is one of the supported ranges
func ValidateAgeGroup(group models.AgeGroup) error {
	switch group {
	case models.AgeGroupNone, models.AgeGroupToddler, models.AgeGroupEarly,
		models.AgeGroupMiddle, models.AgeGroupPreteen:
		return nil
	}
	return ValidationError{Field: "ageGroup", Message: "unknown age group"}
}

// ValidatePIN checks if a parent PIN has the expected shape: 4 to 6 digits
func ValidatePIN(pin string) error {
	if len(pin) < 4 || len(pin) > 6 {
		return ValidationError{Field: "pin", Message: "pin must be 4 to 6 digits"}
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return ValidationError{Field: "pin", Message: "pin must contain only digits"}
		}
	}
	return nil
}

// ValidateRating checks if a review rating is within the 1-5 scale
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return ValidationError{Field: "rating", Message: "rating must be between 1 and 5"}
	}
	return nil
}

// ValidateChatText checks if a chat message body is sendable
func ValidateChatText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ValidationError{Field: "text", Message: "message text is required"}
	}
	if len(text) > 2000 {
		return ValidationError{Field: "text", Message: "message must be at most 2000 characters"}
	}
	return nil
}
