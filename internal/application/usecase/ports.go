package usecase

import (
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/Enterprise-admin-api/internal/domain"
)

// Prefijos de ID por recurso.
const (
	PrefixEnterprise   = "ent_"
	PrefixBusinessType = "bt_"
	PrefixPackage      = "pkg_"
	PrefixSubscription = "sub_"
	PrefixCurrency     = "cur_"
	PrefixNotification = "ntf_"
)

// IDGenerator genera IDs únicos y crecientes con el prefijo del recurso.
// Lo implementa infrastructure/idgen (snowflake).
type IDGenerator interface {
	NewID(prefix string) string
}

// Clock devuelve la hora actual; inyectable en tests.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

func clockOrDefault(c Clock) Clock {
	if c == nil {
		return systemClock
	}
	return c
}

// normalizeCode recorta y pasa a mayúsculas un código único.
func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// duplicateCode traduce un ErrDuplicate del repositorio (carrera entre la
// comprobación previa y la escritura) al error por campo de "code".
func duplicateCode(err error, code string) error {
	if errors.Is(err, domain.ErrDuplicate) && len(domain.FieldErrors(err)) == 0 {
		return newDuplicateCode(code)
	}
	return err
}

func newDuplicateCode(code string) error {
	return domain.NewFieldError(domain.ErrDuplicate, "code", "ya existe un registro con este código", code)
}
