package extract

// FieldKind selects the normalization rule applied to a field value.
type FieldKind int

const (
	KindText  FieldKind = iota // free text, kept as-is
	KindDate                   // must be a valid YYYY-MM-DD date
	KindEnum                   // must be one of FieldRule.Allowed
	KindIdent                  // reduced to alphanumeric characters
	KindEmail                  // must contain '@'
)

// FieldRule describes one field of the extraction schema. The same table drives
// both the model prompt and the normalizer, so the two can never disagree on
// which keys exist.
type FieldRule struct {
	Name    string
	Kind    FieldKind
	Allowed []string // enum values, only for KindEnum
	Hint    string   // shown to the model in the prompt's JSON template
}

// Schema is the ordered set of fields a candidate record carries.
type Schema []FieldRule

// DefaultSchema is the CV field set extracted from uploaded resumes.
func DefaultSchema() Schema {
	return Schema{
		{Name: "firstname", Kind: KindText, Hint: "extracted first name"},
		{Name: "lastname", Kind: KindText, Hint: "extracted last name"},
		{Name: "email", Kind: KindEmail, Hint: "extracted email"},
		{Name: "document_type", Kind: KindEnum, Allowed: []string{"DNI", "Pasaporte"}, Hint: "DNI or Pasaporte, if found"},
		{Name: "document_number", Kind: KindIdent, Hint: "extracted document number"},
		{Name: "birth_country", Kind: KindText, Hint: "extracted country of birth"},
		{Name: "birth_date", Kind: KindDate, Hint: "extracted date in YYYY-MM-DD format"},
		{Name: "gender", Kind: KindEnum, Allowed: []string{"M", "F", "O"}, Hint: "M, F, or O based on the context"},
		{Name: "phone_number", Kind: KindText, Hint: "extracted phone number"},
		{Name: "residence_country", Kind: KindText, Hint: "extracted country of residence"},
		{Name: "province", Kind: KindText, Hint: "extracted province or region"},
		{Name: "city", Kind: KindText, Hint: "extracted city"},
		{Name: "zip_code", Kind: KindIdent, Hint: "extracted postal code"},
		{Name: "address", Kind: KindText, Hint: "extracted street address"},
	}
}

// Empty returns a map with every schema key present and set to "".
func (s Schema) Empty() map[string]string {
	out := make(map[string]string, len(s))
	for _, rule := range s {
		out[rule.Name] = ""
	}
	return out
}
