package domain

// MonthTokens lists the canonical three-letter month tokens in calendar
// order. These are the tokens used inside "Mon YYYY" strings.
var MonthTokens = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthNames lists the full display names in calendar order.
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var monthExpansions = map[string]string{
	"Jan": "January", "Feb": "February", "Mar": "March", "Apr": "April",
	"May": "May", "Jun": "June", "Jul": "July", "Aug": "August",
	"Sep": "September", "Oct": "October", "Nov": "November", "Dec": "December",
}

// ExpandMonth maps a three-letter month token to its full display name.
// Unrecognized tokens pass through unchanged rather than being dropped, so
// already-expanded names survive a second pass.
func ExpandMonth(token string) string {
	if full, ok := monthExpansions[token]; ok {
		return full
	}
	return token
}
