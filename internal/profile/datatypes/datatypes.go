// Package datatypes resolves profile field data-type codes to their type
// names. The set mirrors the platform's stock data-type list; codes are
// stable identifiers stored on field definitions.
package datatypes

// Option pairs a data-type code with its display name.
type Option struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

// Stock data-type codes.
const (
	CodeText      = 349
	CodeRichText  = 350
	CodeInteger   = 351
	CodeTrueFalse = 352
	CodeDate      = 353
	CodeDateTime  = 354
	CodeCountry   = 355
	CodeList      = 356
	CodeLocale    = 357
	CodePage      = 358
	CodeRegion    = 359
	CodeTimeZone  = 360
	CodeImage     = 361
	CodeCurrency  = 362
	CodeURL       = 363
	CodeTime      = 364
)

var names = map[int]string{
	CodeText:      "Text",
	CodeRichText:  "RichText",
	CodeInteger:   "Integer",
	CodeTrueFalse: "TrueFalse",
	CodeDate:      "Date",
	CodeDateTime:  "DateTime",
	CodeCountry:   "Country",
	CodeList:      "List",
	CodeLocale:    "Locale",
	CodePage:      "Page",
	CodeRegion:    "Region",
	CodeTimeZone:  "TimeZone",
	CodeImage:     "Image",
	CodeCurrency:  "Currency",
	CodeURL:       "URL",
	CodeTime:      "Time",
}

// ordered keeps List output deterministic for option rendering.
var ordered = []int{
	CodeText, CodeRichText, CodeInteger, CodeTrueFalse, CodeDate,
	CodeDateTime, CodeCountry, CodeList, CodeLocale, CodePage,
	CodeRegion, CodeTimeZone, CodeImage, CodeCurrency, CodeURL, CodeTime,
}

// Static resolves codes against the stock list. It satisfies the registry's
// resolver dependency without an external lookup service.
type Static struct{}

// ResolveTypeName returns the type name for code, or "" when the code is
// unknown. Unknown codes are not an error; they simply carry no structural
// validation rule.
func (Static) ResolveTypeName(code int) string {
	return names[code]
}

// List returns all stock data types in display order.
func (Static) List() []Option {
	opts := make([]Option, 0, len(ordered))
	for _, code := range ordered {
		opts = append(opts, Option{Code: code, Name: names[code]})
	}
	return opts
}
