// Package textnorm normaliza nombres antes de compararlos o guardarlos como únicos.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Las variantes del apóstrofo uzbeko (o‘, g‘) se unifican en el ASCII.
var apostrophes = strings.NewReplacer(
	"\u2018", "'",
	"\u2019", "'",
	"\u02BB", "'",
	"\u02BC", "'",
	"`", "'",
)

// Name NFC, apóstrofos unificados y espacios colapsados.
func Name(s string) string {
	s = norm.NFC.String(s)
	s = apostrophes.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Code identificadores (INN, PINFL, número de contorno): sin espacios internos.
func Code(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), "")
}
