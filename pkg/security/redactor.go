package security

import (
	"sort"
	"strings"
)

type Redactor struct {
	Secrets []string
}

// NewRedactor builds a redactor over the given secret values. Empty values
// are tolerated and skipped at redaction time.
func NewRedactor(secrets []string) *Redactor {
	return &Redactor{Secrets: secrets}
}

func (r *Redactor) Redact(s string) string {
	if r == nil || len(r.Secrets) == 0 {
		return s
	}

	// Sort secrets by length in descending order to handle overlapping secrets properly
	// This ensures longer secrets are replaced before their substrings
	secrets := make([]string, len(r.Secrets))
	copy(secrets, r.Secrets)
	sort.Slice(secrets, func(i, j int) bool {
		return len(secrets[i]) > len(secrets[j])
	})

	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		s = strings.ReplaceAll(s, secret, "********")
	}
	return s
}
