package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	nameMaxLength    = 100
	titleMaxLength   = 200
	commentMaxLength = 2000
)

// ValidateEmail checks the address is plausibly deliverable.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > 254 || !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidateName checks the display name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len([]rune(name)) > nameMaxLength {
		return fmt.Errorf("name must be at most %d characters", nameMaxLength)
	}
	return nil
}

// ValidatePostTitle checks a post title is present and within bounds.
func ValidatePostTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if len([]rune(title)) > titleMaxLength {
		return fmt.Errorf("title must be at most %d characters", titleMaxLength)
	}
	return nil
}

// ValidateCommentText checks a comment or reply body.
func ValidateCommentText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("comment text is required")
	}
	if len([]rune(text)) > commentMaxLength {
		return fmt.Errorf("comment must be at most %d characters", commentMaxLength)
	}
	return nil
}
