package scaffold

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	emailPattern      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// pythonKeywords are reserved words that cannot serve as package names.
var pythonKeywords = map[string]struct{}{
	"False": {}, "None": {}, "True": {}, "and": {}, "as": {}, "assert": {},
	"async": {}, "await": {}, "break": {}, "class": {}, "continue": {},
	"def": {}, "del": {}, "elif": {}, "else": {}, "except": {}, "finally": {},
	"for": {}, "from": {}, "global": {}, "if": {}, "import": {}, "in": {},
	"is": {}, "lambda": {}, "nonlocal": {}, "not": {}, "or": {}, "pass": {},
	"raise": {}, "return": {}, "try": {}, "while": {}, "with": {}, "yield": {},
}

// windowsReservedNames cannot be used as folder names on Windows.
var windowsReservedNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {},
	"COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {},
	"LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// ValidateName checks that name works both as a cross-platform folder name
// and as a Python package/import name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if len(name) > 255 {
		return fmt.Errorf("project name too long (max 255 characters)")
	}
	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("project name cannot start with a dot")
	}
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("%q is not a valid Python identifier: must start with a letter or underscore and contain only letters, numbers, and underscores", name)
	}
	if _, ok := pythonKeywords[name]; ok {
		return fmt.Errorf("%q is a Python keyword and cannot be used", name)
	}
	if _, ok := windowsReservedNames[strings.ToUpper(name)]; ok {
		return fmt.Errorf("%q is a reserved name on Windows", name)
	}
	return nil
}

// ValidateEmail checks the author email for basic well-formedness.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%q is not a valid email address", email)
	}
	return nil
}

// ValidateLicense checks the license against the allowed list,
// case-insensitively, and returns the canonical identifier.
func ValidateLicense(license string) (string, error) {
	for _, allowed := range AllowedLicenses {
		if strings.EqualFold(allowed, license) {
			return allowed, nil
		}
	}
	return "", fmt.Errorf("unsupported license %q (allowed: %s)", license, strings.Join(AllowedLicenses, ", "))
}
