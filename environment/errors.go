package environment

import "github.com/pkg/errors"

func errInvalidAction(a int) error {
	return errors.Errorf("invalid action %d", a)
}
