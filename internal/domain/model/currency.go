package model

import "strings"

// Currency is an ISO 4217 three-letter code, uppercase.
type Currency string

func (c Currency) String() string {
	return string(c)
}

// Normalize uppercases the code so lookups are case-insensitive.
func (c Currency) Normalize() Currency {
	return Currency(strings.ToUpper(string(c)))
}

// Valid reports whether the code is exactly three ASCII letters.
func (c Currency) Valid() bool {
	if len(c) != 3 {
		return false
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
