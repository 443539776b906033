package sim

import "strings"

// NameMustBeValid panics if the name does not follow the naming convention.
// Names are organized in a hierarchical structure with dot-separated tokens
// (e.g., "System.Core"). Individual tokens must not be empty and must start
// with a capital letter.
func NameMustBeValid(name string) {
	if name == "" {
		panic("name must not be empty")
	}

	tokens := strings.Split(name, ".")
	for _, token := range tokens {
		tokenMustBeValid(name, token)
	}
}

func tokenMustBeValid(name, token string) {
	if token == "" {
		panic("name " + name + " is not valid: name element must not be empty")
	}

	first := token[0]
	if first < 'A' || first > 'Z' {
		panic("name " + name +
			" is not valid: name element must start with a capital letter")
	}
}
