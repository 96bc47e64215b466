package textnorm_test

import (
	"testing"

	"github.com/jhoicas/navbahor-erp/pkg/textnorm"
	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	assert.Equal(t, "Dizel yoqilg'isi", textnorm.Name("  Dizel   yoqilg\u2018isi "))
	assert.Equal(t, "O'g'it", textnorm.Name("O\u02BBg\u02BBit"))
	// e + acento combinante -> é precompuesta
	assert.Equal(t, "caf\u00e9", textnorm.Name("cafe\u0301"))
}

func TestCode(t *testing.T) {
	assert.Equal(t, "305123456", textnorm.Code(" 305 123 456 "))
}
