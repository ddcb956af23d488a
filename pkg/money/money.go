// Package money formatea montos para presentación (recibos, PDF).
// Los cálculos del dominio siempre usan decimal a precisión completa;
// aquí solo se redondea y agrupa para mostrar.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter formatea montos en una moneda ISO 4217 (por defecto PHP).
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter construye el formateador para el código de moneda dado.
// Un código no reconocido cae a PHP (la moneda del negocio).
func NewFormatter(code string) *Formatter {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.MustParseISO("PHP")
	}
	p := message.NewPrinter(language.English)
	return &Formatter{
		printer: p,
		// NarrowSymbol: "₱" y no el código "PHP" en recibos y respuestas
		symbol: p.Sprint(currency.NarrowSymbol(unit)),
	}
}

// Format devuelve el monto redondeado a 2 decimales con símbolo y separador
// de miles, ej. "₱1,234.50".
func (f *Formatter) Format(amount decimal.Decimal) string {
	v, _ := amount.Round(2).Float64()
	return f.printer.Sprintf("%s%.2f", f.symbol, v)
}
