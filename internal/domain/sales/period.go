package sales

import (
	"fmt"
	"time"

	"github.com/jhoicas/reposicion-api/internal/domain"
)

// MonthSpan número de meses calendario entre start y end: (años × 12) + diferencia de meses.
// Es el divisor de los promedios mensuales, de modo que los meses sin actividad también cuentan.
// Un rango dentro del mismo mes daría divisor cero y se rechaza.
func MonthSpan(start, end time.Time) (int, error) {
	if start.IsZero() || end.IsZero() {
		return 0, fmt.Errorf("%w: fechas requeridas", domain.ErrInvalidInput)
	}
	if end.Before(start) {
		return 0, fmt.Errorf("%w: end_date anterior a start_date", domain.ErrInvalidInput)
	}
	n := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if n <= 0 {
		return 0, fmt.Errorf("%w: el rango debe abarcar al menos un cambio de mes", domain.ErrInvalidInput)
	}
	return n, nil
}

// MonthStart primer día del mes de t.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthLabel etiqueta legible del mes: "January 2017".
func MonthLabel(t time.Time) string {
	return t.Format("January 2006")
}
