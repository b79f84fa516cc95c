package version

import (
	goversion "github.com/hashicorp/go-version"

	"github.com/cockroachdb/errors"
)

// Protocol - версия протокола сервера. Отдается клиенту в WELCOME.
const Protocol = "1.2.0"

var ErrIncompatible = errors.New("incompatible client protocol")

// Compatible проверяет версию клиента по ограничению вида ">= 1.0, < 2.0".
func Compatible(client, constraint string) error {
	if client == "" {
		return errors.Wrap(ErrIncompatible, "client version is empty")
	}
	v, err := goversion.NewVersion(client)
	if err != nil {
		return errors.Wrapf(ErrIncompatible, "bad client version %q", client)
	}
	c, err := goversion.NewConstraint(constraint)
	if err != nil {
		return errors.Wrapf(err, "bad constraint %q", constraint)
	}
	if !c.Check(v) {
		return errors.Wrapf(ErrIncompatible, "client %s does not satisfy %s", v, constraint)
	}
	return nil
}
