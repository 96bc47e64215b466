// Package phone normaliza teléfonos al formato E.164.
package phone

import (
	"fmt"
	"strings"

	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/ttacon/libphonenumber"
)

// DefaultRegion región usada cuando el número no trae prefijo internacional.
const DefaultRegion = "UZ"

// Normalize devuelve el número en E.164 (+998901234567). Vacío se mantiene vacío.
func Normalize(raw, region string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if region == "" {
		region = DefaultRegion
	}
	p, err := libphonenumber.Parse(raw, region)
	if err != nil {
		return "", fmt.Errorf("%w: teléfono %q: %v", domain.ErrInvalidInput, raw, err)
	}
	if !libphonenumber.IsValidNumber(p) {
		return "", fmt.Errorf("%w: teléfono %q no válido", domain.ErrInvalidInput, raw)
	}
	return libphonenumber.Format(p, libphonenumber.E164), nil
}
