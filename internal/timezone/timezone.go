package timezone

import "time"

const (
	DefaultTimezone = "America/Sao_Paulo"

	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location cai para DefaultTimezone quando tz é vazio ou inválido.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseDate valida uma data ISO (YYYY-MM-DD) e devolve meia-noite em loc.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, loc)
}

// At combina uma data ISO com um horário HH:MM:SS no fuso loc.
func At(date, clockTime string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clockTime, loc)
}

// Today devolve a data corrente (YYYY-MM-DD) em loc.
func Today(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(DateLayout)
}
