package domain

import (
	"time"

	"github.com/cockroachdb/errors"
)

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02T15:04:05"
)

var ErrInvalidDate = errors.New("invalid date")

// Moscow é o fuso usado pelo registro. Cai para UTC+3 fixo quando a base de
// fusos não está disponível.
var Moscow = loadMoscow()

func loadMoscow() *time.Location {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		return time.FixedZone("MSK", 3*60*60)
	}
	return loc
}

// NormalizeDate valida uma data yyyy-MM-dd e a devolve no mesmo formato,
// ancorada no início do dia em Moscou.
func NormalizeDate(date string) (string, error) {
	if date == "" {
		return "", errors.Mark(errors.New("date must not be empty"), ErrInvalidDate)
	}
	t, err := time.ParseInLocation(DateLayout, date, Moscow)
	if err != nil {
		return "", errors.Mark(errors.Wrapf(err, "parse date %q", date), ErrInvalidDate)
	}
	return t.Format(DateLayout), nil
}

// MoscowTimestamp formata t como yyyy-MM-ddTHH:mm:ss no horário de Moscou.
func MoscowTimestamp(t time.Time) string {
	return t.In(Moscow).Format(TimestampLayout)
}
