package validate

import "regexp"

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// IsAuthenticEmail valida solo la sintaxis local@dominio.tld (tld de 2+ letras).
// No hace lookup de DNS ni verifica el buzón.
func IsAuthenticEmail(candidate string) bool {
	if candidate == "" {
		return false
	}
	return emailPattern.MatchString(candidate)
}
