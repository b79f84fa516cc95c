package config

import (
	"fmt"
	"strings"

	"armory-server/internal/domain"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-version"
)

const (
	defaultPutAway = domain.DefaultPutAwayDuration
	defaultTakeOut = domain.DefaultTakeOutDuration
)

var validate = validator.New()

// Validate проверяет теги структуры и связи между секциями:
// ключи слотов уникальны глобально, оружие каталога ссылается на известные группы,
// стартовый набор ссылается на каталог.
func Validate(cfg *Config) error {
	if cfg == nil {
		return ErrNilConfig
	}
	if err := validate.Struct(cfg); err != nil {
		return errors.Wrap(ErrValidationFailed, formatValidationErrors(err))
	}
	if _, err := version.NewConstraint(cfg.Server.ClientConstraint); err != nil {
		return errors.Wrapf(ErrValidationFailed, "server.clientConstraint %q: %v", cfg.Server.ClientConstraint, err)
	}

	groups := make(map[string]bool)
	keys := make(map[string]string)
	for _, g := range cfg.Loadout.Groups {
		if groups[g.Name] {
			return errors.Wrapf(ErrValidationFailed, "duplicate group %q", g.Name)
		}
		groups[g.Name] = true
		for _, k := range g.Keys {
			if owner, dup := keys[k]; dup {
				return errors.Wrapf(ErrValidationFailed, "slot key %q used by groups %q and %q", k, owner, g.Name)
			}
			keys[k] = g.Name
		}
	}

	weapons := make(map[string]bool)
	for _, w := range cfg.Catalog {
		if weapons[w.ID] {
			return errors.Wrapf(ErrValidationFailed, "duplicate weapon %q", w.ID)
		}
		weapons[w.ID] = true
		if !groups[w.Group] {
			return errors.Wrapf(ErrValidationFailed, "weapon %q references unknown group %q", w.ID, w.Group)
		}
	}
	for _, id := range cfg.Loadout.Starting {
		if !weapons[id] {
			return errors.Wrapf(ErrValidationFailed, "starting weapon %q not in catalog", id)
		}
	}
	return nil
}

func formatValidationErrors(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "required_if":
			parts = append(parts, fmt.Sprintf("field '%s' is required", fe.Namespace()))
		case "min", "gte":
			parts = append(parts, fmt.Sprintf("field '%s' must be at least %s", fe.Namespace(), fe.Param()))
		case "max", "lte":
			parts = append(parts, fmt.Sprintf("field '%s' must be at most %s", fe.Namespace(), fe.Param()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("field '%s' must be one of [%s]", fe.Namespace(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("field '%s' failed validation '%s'", fe.Namespace(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
