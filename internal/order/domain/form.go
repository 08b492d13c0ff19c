package domain

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	PhonePrefix       = "+998"
	phoneCountryCode  = "998"
	phoneLocalDigits  = 9
	nameMinRunes      = 2
	nameMaxRunes      = 50
	FieldCustomerName = "customerName"
	FieldPhone        = "phone"
	FieldRegion       = "region"
)

var phonePattern = regexp.MustCompile(`^\+998\d{9}$`)

var regions = []string{
	"Тошкент",
	"Тошкент вилояти",
	"Андижон",
	"Фарғона",
	"Наманган",
	"Самарқанд",
	"Бухоро",
	"Хоразм",
	"Қашқадарё",
	"Сурхондарё",
	"Навоий",
	"Жиззах",
	"Сирдарё",
	"Қорақалпоғистон",
}

func Regions() []string {
	out := make([]string, len(regions))
	copy(out, regions)
	return out
}

func IsRegion(s string) bool {
	for _, r := range regions {
		if r == s {
			return true
		}
	}
	return false
}

// NormalizePhone keeps the +998 prefix fixed and at most nine local digits.
// Digits already starting with the country code have it stripped; a
// partially typed country code ("9", "99") counts as no local digits.
func NormalizePhone(raw string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	var local string
	switch {
	case strings.HasPrefix(digits, phoneCountryCode):
		local = digits[len(phoneCountryCode):]
	case strings.HasPrefix(phoneCountryCode, digits):
		local = ""
	default:
		local = digits
	}
	if len(local) > phoneLocalDigits {
		local = local[:phoneLocalDigits]
	}
	return PhonePrefix + local
}

type Form struct {
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Region       string `json:"region"`
}

func EmptyForm() Form {
	return Form{Phone: PhonePrefix}
}

// ValidationErrors maps a form field to its user-facing message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+v[k])
	}
	return "invalid order form: " + strings.Join(parts, "; ")
}

// Validate returns nil when the form may be submitted.
func (f Form) Validate() ValidationErrors {
	errs := ValidationErrors{}

	name := strings.TrimFunc(f.CustomerName, unicode.IsSpace)
	switch n := utf8.RuneCountInString(name); {
	case n < nameMinRunes:
		errs[FieldCustomerName] = "Исм камида 2 та ҳарф"
	case n > nameMaxRunes:
		errs[FieldCustomerName] = "Исм 50 та ҳарфдан ошмасин"
	}

	if !phonePattern.MatchString(f.Phone) {
		errs[FieldPhone] = "Телефон формати нотўғри"
	}

	if !IsRegion(f.Region) {
		errs[FieldRegion] = "Вилоятни танланг"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
