package playground

import "fmt"

const (
	errPrefix = "[error]"
	okPrefix  = "[ok]"
)

// WrapError - wrapping error with prefix '[error]'.
func WrapError(err error) string {
	return fmt.Sprintf("%s %v", errPrefix, err)
}

// WrapOK - wrapping message with prefix '[ok]'.
func WrapOK(msg string) string {
	if msg == "" {
		return okPrefix
	}

	return fmt.Sprintf("%s %s", okPrefix, msg)
}
