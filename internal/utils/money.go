package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatShillings renders "KSh 1,250" or "KSh 12.50" when there are cents.
func FormatShillings(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	cents := int64(amount*100 + 0.5)
	whole, frac := cents/100, cents%100
	if frac == 0 {
		return fmt.Sprintf("%sKSh %s", sign, formatThousand(whole))
	}
	return fmt.Sprintf("%sKSh %s.%02d", sign, formatThousand(whole), frac)
}

// FormatUnitPrice renders a listing price the way cards show it, e.g. "KSh 80/kg".
func FormatUnitPrice(amount float64, unit string) string {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return FormatShillings(amount)
	}
	return FormatShillings(amount) + "/" + unit
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
