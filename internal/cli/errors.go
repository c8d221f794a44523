package cli

import "fmt"

type notConfiguredError struct {
	what string
}

func (e notConfiguredError) Error() string {
	return fmt.Sprintf("no %s configured: pass --server, set TASKCHAT_SERVER, or run `taskchat login`", e.what)
}

func errNotConfigured(what string) error {
	return notConfiguredError{what: what}
}

type confirmRequiredError struct {
	action string
	target string
}

func (e confirmRequiredError) Error() string {
	return fmt.Sprintf("refusing to %s %s without --yes", e.action, e.target)
}

func errConfirmRequired(action, target string) error {
	return confirmRequiredError{action: action, target: target}
}
