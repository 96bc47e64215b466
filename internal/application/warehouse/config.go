package warehouse

import "golang.org/x/crypto/bcrypt"

// Config textos de documento y valores por defecto del aprovisionamiento de fermers.
type Config struct {
	WarehouseName         string // receptor impreso en las entradas
	ShipperName           string // remitente impreso en todas las notas
	FarmerDefaultPassword string
	FarmerDefaultAddress  string
	// HashPassword por defecto bcrypt.DefaultCost.
	HashPassword func(plain string) (string, error)
}

// DefaultConfig valores usados por el clúster.
func DefaultConfig() Config {
	return Config{
		WarehouseName:         "Ombor",
		ShipperName:           "Klaster",
		FarmerDefaultPassword: "123456",
		FarmerDefaultAddress:  "Navbahor",
		HashPassword:          BcryptHash(bcrypt.DefaultCost),
	}
}

// BcryptHash devuelve un hasher bcrypt con el costo indicado.
func BcryptHash(cost int) func(string) (string, error) {
	return func(plain string) (string, error) {
		h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
		if err != nil {
			return "", err
		}
		return string(h), nil
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.WarehouseName == "" {
		c.WarehouseName = d.WarehouseName
	}
	if c.ShipperName == "" {
		c.ShipperName = d.ShipperName
	}
	if c.FarmerDefaultPassword == "" {
		c.FarmerDefaultPassword = d.FarmerDefaultPassword
	}
	if c.FarmerDefaultAddress == "" {
		c.FarmerDefaultAddress = d.FarmerDefaultAddress
	}
	if c.HashPassword == nil {
		c.HashPassword = d.HashPassword
	}
	return c
}
