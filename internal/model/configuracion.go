package model

// Configuracion is a clave/valor settings row. The invoice counter lives
// under clave="ultima_factura" and is advanced read → +1 → update.
type Configuracion struct {
	Clave string `gorm:"primaryKey" json:"clave"`
	Valor string `gorm:"not null" json:"valor"`
}

// ClaveUltimaFactura is the settings key holding the last issued invoice number.
const ClaveUltimaFactura = "ultima_factura"

func (Configuracion) TableName() string { return "configuracion" }
