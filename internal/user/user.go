package user

import (
	"os"
	"os/user"
)

// EnvVar names the team member a shell session acts as
const EnvVar = "PHASEBOARD_USER"

// GetCurrentUsername returns the current system username.
// It tries multiple methods with fallbacks:
// 1. user.Current() - most reliable, gets username from OS
// 2. USER environment variable - fallback for restricted environments
// 3. "unknown" - final fallback to ensure a non-empty value
func GetCurrentUsername() string {
	currentUser, err := user.Current()
	if err != nil {
		username := os.Getenv("USER")
		if username == "" {
			return "unknown"
		}
		return username
	}
	return currentUser.Username
}

// DefaultMemberID is the member ID used when --user is not given:
// $PHASEBOARD_USER if set, otherwise the system username
func DefaultMemberID() string {
	if id := os.Getenv(EnvVar); id != "" {
		return id
	}
	return GetCurrentUsername()
}
