package seed

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

var (
	ErrInvalidSeedInput = errors.New("invalid seed input, checksum must be non empty and the rotation key must only contain digits")
	ErrInvalidURL       = errors.New("image url does not contain a checksum path segment and a rotation key query parameter")
)

// Derive rotates the checksum right once per digit of the rotation key. A digit d moves the last d characters of
// the checksum to its front, zero leaves it untouched.
func Derive(checksum, rotationKey string) (string, error) {
	if checksum == "" {
		return "", fmt.Errorf("%w: empty checksum", ErrInvalidSeedInput)
	}

	runes := []rune(checksum)
	for idx, digit := range rotationKey {
		if digit < '0' || digit > '9' {
			return "", fmt.Errorf("%w: character %q at position %d of rotation key", ErrInvalidSeedInput, digit, idx)
		}

		shift := int(digit-'0') % len(runes)
		if shift == 0 {
			continue
		}
		rotated := make([]rune, 0, len(runes))
		rotated = append(rotated, runes[len(runes)-shift:]...)
		rotated = append(rotated, runes[:len(runes)-shift]...)
		runes = rotated
	}

	return string(runes), nil
}

// FromURL extracts the checksum (second to last path segment) and the rotation key (value of the second query
// parameter) from a scrambled image url.
func FromURL(rawURL string) (checksum, rotationKey string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	segments := strings.Split(u.Path, "/")
	if len(segments) < 2 || segments[len(segments)-2] == "" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}
	checksum = segments[len(segments)-2]

	// Parameter order matters here, url.Values would lose it
	params := strings.Split(u.RawQuery, "&")
	if len(params) < 2 {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}
	_, value, found := strings.Cut(params[1], "=")
	if !found || value == "" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}
	rotationKey, err = url.QueryUnescape(value)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	return checksum, rotationKey, nil
}

func ForURL(rawURL string) (string, error) {
	checksum, rotationKey, err := FromURL(rawURL)
	if err != nil {
		return "", err
	}
	return Derive(checksum, rotationKey)
}

// IsScrambled reports whether images served with this seed are scrambled. Scrambled pages come with seeds whose
// cased characters are all uppercase, anything else is served as is.
func IsScrambled(seed string) bool {
	var cased bool
	for _, r := range seed {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}
