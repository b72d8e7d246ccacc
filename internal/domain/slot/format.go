package slot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

var ErrMalformedSlot = errors.New("malformed slot")

// ToStorage converte "02:30 PM" em "14:30:00".
func ToStorage(display string) (string, error) {
	parts := strings.Fields(strings.TrimSpace(display))
	if len(parts) != 2 {
		return "", errors.Wrapf(ErrMalformedSlot, "%q", display)
	}

	hour, minute, err := splitClock(parts[0])
	if err != nil || hour < 1 || hour > 12 {
		return "", errors.Wrapf(ErrMalformedSlot, "%q", display)
	}

	switch strings.ToUpper(parts[1]) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 12 {
			hour += 12
		}
	default:
		return "", errors.Wrapf(ErrMalformedSlot, "%q", display)
	}

	return fmt.Sprintf("%02d:%02d:00", hour, minute), nil
}

// ToDisplay converte "14:30:00" em "02:30 PM". A hora sai com dois
// dígitos para casar exatamente com a grade.
func ToDisplay(storage string) (string, error) {
	hour, minute, err := parseStorage(storage)
	if err != nil {
		return "", err
	}

	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}

	return fmt.Sprintf("%02d:%02d %s", h, minute, meridiem), nil
}

// NormalizeStorage devolve a forma canônica HH:MM:SS de um valor
// persistido ("9:00:00", "09:00" e "09:00:00" são o mesmo horário).
func NormalizeStorage(stored string) (string, error) {
	hour, minute, err := parseStorage(stored)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d:00", hour, minute), nil
}

// MustStorage é para valores da grade, que são sempre válidos.
func MustStorage(display string) string {
	s, err := ToStorage(display)
	if err != nil {
		panic(err)
	}
	return s
}

func parseStorage(stored string) (int, int, error) {
	s := strings.TrimSpace(stored)
	fields := strings.Split(s, ":")
	if len(fields) < 2 || len(fields) > 3 {
		return 0, 0, errors.Wrapf(ErrMalformedSlot, "%q", stored)
	}

	hour, minute, err := splitClock(fields[0] + ":" + fields[1])
	if err != nil || hour > 23 {
		return 0, 0, errors.Wrapf(ErrMalformedSlot, "%q", stored)
	}
	if len(fields) == 3 {
		if sec, err := strconv.Atoi(fields[2]); err != nil || sec < 0 || sec > 59 {
			return 0, 0, errors.Wrapf(ErrMalformedSlot, "%q", stored)
		}
	}

	return hour, minute, nil
}

func splitClock(hm string) (int, int, error) {
	h, m, ok := strings.Cut(hm, ":")
	if !ok || len(h) == 0 || len(h) > 2 || len(m) != 2 {
		return 0, 0, ErrMalformedSlot
	}

	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 {
		return 0, 0, ErrMalformedSlot
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, ErrMalformedSlot
	}

	return hour, minute, nil
}
