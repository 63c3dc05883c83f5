// ABOUTME: Pre-request input validation for console commands and forms
// ABOUTME: Catches obvious mistakes before a round trip to the gateway

package validate

import (
	"fmt"
	"strings"
)

// MinPasswordLength matches the gateway's registration rule.
const MinPasswordLength = 6

// Required reports an error naming the field when value is blank.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// Email checks the rough shape of an address: something@something.tld.
// The gateway does the authoritative check; this only saves a round trip.
func Email(value string) error {
	if err := Required("email", value); err != nil {
		return err
	}
	at := strings.Index(value, "@")
	if at <= 0 || at == len(value)-1 {
		return fmt.Errorf("invalid email address %q", value)
	}
	domain := value[at+1:]
	if !strings.Contains(domain, ".") || strings.Contains(value, " ") {
		return fmt.Errorf("invalid email address %q", value)
	}
	return nil
}

// Password enforces the minimum length.
func Password(value string) error {
	if len(value) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// PasswordConfirm enforces length and confirmation together.
func PasswordConfirm(password, confirm string) error {
	if err := Password(password); err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}
