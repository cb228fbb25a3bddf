package domain

import "regexp"

type PhoneNumber string

var phoneRegex = regexp.MustCompile(`^(\+[1-9]\d{1,14}|\d{1,15})$`)

func (p PhoneNumber) IsValid() bool {
	return phoneRegex.MatchString(string(p))
}
