package ledger

import (
	"fmt"
	"strconv"
	"strings"
)

// WaybillPrefix prefijo de las notas de despacho.
const WaybillPrefix = "NX"

// FormatWaybillNumber NX-{año}-{secuencia con al menos 4 dígitos}.
func FormatWaybillNumber(year, seq int) string {
	return fmt.Sprintf("%s-%d-%04d", WaybillPrefix, year, seq)
}

// ParseWaybillSeq devuelve la secuencia numérica tras el último guion.
func ParseWaybillSeq(number string) (int, error) {
	i := strings.LastIndex(number, "-")
	if i < 0 || i == len(number)-1 {
		return 0, fmt.Errorf("número de nota %q sin secuencia", number)
	}
	seq, err := strconv.Atoi(number[i+1:])
	if err != nil || seq < 0 {
		return 0, fmt.Errorf("número de nota %q con secuencia inválida", number)
	}
	return seq, nil
}

// NextWaybillNumber siguiente número a partir del último emitido (cualquier año).
// La secuencia no se reinicia al cambiar de año; solo cambia el año impreso.
func NextWaybillNumber(last string, year int) (string, error) {
	if last == "" {
		return FormatWaybillNumber(year, 1), nil
	}
	seq, err := ParseWaybillSeq(last)
	if err != nil {
		return "", err
	}
	return FormatWaybillNumber(year, seq+1), nil
}
