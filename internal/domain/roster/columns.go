package roster

import "strings"

// Canonical field keys produced by column mapping.
const (
	FieldName     = "name"
	FieldPhone    = "phone"
	FieldEmail    = "email"
	FieldAmount   = "amount"
	FieldCompany  = "company"
	FieldAddress  = "address"
	FieldJoinDate = "join_date"
)

// columnAliases maps the header names seen across the source spreadsheets
// to canonical field keys. The table is fixed: headers not listed here are
// dropped rather than guessed at.
var columnAliases = map[string]string{
	"이름":     FieldName,
	"성명":     FieldName,
	"회원명":    FieldName,
	"후원자명":   FieldName,
	"전화번호":   FieldPhone,
	"연락처":    FieldPhone,
	"휴대폰":    FieldPhone,
	"이메일":    FieldEmail,
	"이메일주소":  FieldEmail,
	"e-mail": FieldEmail,
	"조합비":    FieldAmount,
	"후원금":    FieldAmount,
	"납입금액":   FieldAmount,
	"후원금액":   FieldAmount,
	"월납입약정금액": FieldAmount,
	"기업명":    FieldCompany,
	"기업/단체명": FieldCompany,
	"주소":     FieldAddress,
	"거주지":    FieldAddress,
	"가입일":    FieldJoinDate,
	"등록일":    FieldJoinDate,
	"후원시작일":  FieldJoinDate,
	"최초약정일":  FieldJoinDate,
}

// MapColumns resolves a raw header row to a header→canonical-field mapping.
// Unrecognized headers are absent from the result. Canonical headers map to
// themselves so already-standardized files round-trip.
func MapColumns(headers []string) map[string]string {
	mapping := make(map[string]string, len(headers))
	for _, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		if canonical, ok := columnAliases[key]; ok {
			mapping[h] = canonical
			continue
		}
		switch key {
		case FieldName, FieldPhone, FieldEmail, FieldAmount,
			FieldCompany, FieldAddress, FieldJoinDate:
			mapping[h] = key
		}
	}
	return mapping
}

// standardizeRow applies a column mapping to one raw row, keeping only
// recognized fields.
func standardizeRow(row map[string]string, mapping map[string]string) map[string]string {
	out := make(map[string]string, len(mapping))
	for rawCol, field := range mapping {
		if v, ok := row[rawCol]; ok {
			out[field] = strings.TrimSpace(v)
		}
	}
	return out
}
