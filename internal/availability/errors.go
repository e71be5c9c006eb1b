package availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	// (нулевая дата, неположительная длительность, неразборчивое время правила)
	ErrInvalidInput = errors.New("availability: invalid input data")
)
