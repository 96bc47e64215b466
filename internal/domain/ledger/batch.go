package ledger

import (
	"crypto/rand"
	"math/big"
)

const (
	batchIDLength   = 9
	batchIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NewBatchID genera el identificador de lote compartido por todas las líneas de una operación.
func NewBatchID() string {
	max := big.NewInt(int64(len(batchIDAlphabet)))
	b := make([]byte, batchIDLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("crypto/rand: " + err.Error())
		}
		b[i] = batchIDAlphabet[n.Int64()]
	}
	return string(b)
}
