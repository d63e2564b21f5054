package substitute

import (
	"os"
	"time"
)

// SpecialVariable is a zero-argument value provider. Specials resolve only
// when the variable bag has no explicit entry for the name, so users can
// always override them.
type SpecialVariable func() string

// defaultSpecials returns the built-in special variables
func defaultSpecials() map[string]SpecialVariable {
	return map[string]SpecialVariable{
		"DATE": func() string {
			return time.Now().Format("2006-01-02")
		},
		"TIME": func() string {
			return time.Now().Format("15:04:05")
		},
		"TIMESTAMP": func() string {
			return time.Now().UTC().Format(time.RFC3339)
		},
		"YEAR": func() string {
			return time.Now().Format("2006")
		},
		"USER": func() string {
			if u := os.Getenv("USER"); u != "" {
				return u
			}
			return os.Getenv("USERNAME")
		},
	}
}
