package model

import "time"

const (
	// DateLayout is the day-first layout every transaction date must follow.
	DateLayout = "DD-MM-YYYY"
	// MonthKeyLayout is the month-first layout used to group and query reports.
	MonthKeyLayout = "MM-YYYY"
	// InvalidMonthKey groups every transaction whose date fails ValidateFormat.
	InvalidMonthKey = "00-0000"
)

// ValidateFormat reports whether date is exactly DD-MM-YYYY made of ASCII digits
// with dashes at positions 2 and 5.
//
// Only the shape is checked: "99-99-9999" passes. Calendar validation is not
// performed anywhere in the ledger.
func ValidateFormat(date string) bool {
	if len(date) != len(DateLayout) {
		return false
	}
	for i := 0; i < len(date); i++ {
		switch i {
		case 2, 5:
			if date[i] != '-' {
				return false
			}
		default:
			if !isDigit(date[i]) {
				return false
			}
		}
	}
	return true
}

// MonthKey returns the MM-YYYY portion of a DD-MM-YYYY date, or InvalidMonthKey
// when the date is malformed.
func MonthKey(date string) string {
	if !ValidateFormat(date) {
		return InvalidMonthKey
	}
	return date[3:10]
}

// ValidateMonthKey reports whether key looks like MM-YYYY.
func ValidateMonthKey(key string) bool {
	if len(key) != len(MonthKeyLayout) {
		return false
	}
	for i := 0; i < len(key); i++ {
		if i == 2 {
			if key[i] != '-' {
				return false
			}
			continue
		}
		if !isDigit(key[i]) {
			return false
		}
	}
	return true
}

// FormatDate renders t in the ledger's DD-MM-YYYY layout.
func FormatDate(t time.Time) string {
	return t.Format("02-01-2006")
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
