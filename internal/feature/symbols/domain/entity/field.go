package entity

import "fmt"

// Field names one mutable symbol attribute.
type Field string

const (
	FieldName        Field = "name"
	FieldSector      Field = "sector"
	FieldSubIndustry Field = "sub_industry"
	FieldHeadquarter Field = "headquarter"
	FieldDateAdded   Field = "date_added"
	FieldCIK         Field = "cik"
	FieldFounded     Field = "founded"
	FieldCurrency    Field = "currency"
)

// DefaultComparedFields is the declared comparison order used by the
// reconciler unless configured otherwise.
var DefaultComparedFields = []Field{
	FieldName,
	FieldSector,
	FieldSubIndustry,
	FieldHeadquarter,
	FieldDateAdded,
	FieldCIK,
	FieldFounded,
	FieldCurrency,
}

// Get returns the value of f.
func (a Attributes) Get(f Field) (string, error) {
	switch f {
	case FieldName:
		return a.Name, nil
	case FieldSector:
		return a.Sector, nil
	case FieldSubIndustry:
		return a.SubIndustry, nil
	case FieldHeadquarter:
		return a.Headquarter, nil
	case FieldDateAdded:
		return a.DateAdded, nil
	case FieldCIK:
		return a.CIK, nil
	case FieldFounded:
		return a.Founded, nil
	case FieldCurrency:
		return a.Currency, nil
	default:
		return "", fmt.Errorf("unknown symbol field %q", f)
	}
}

// ValidateFields rejects unknown or repeated field names.
func ValidateFields(fields []Field) error {
	seen := make(map[Field]struct{}, len(fields))
	for _, f := range fields {
		if _, err := (Attributes{}).Get(f); err != nil {
			return err
		}
		if _, dup := seen[f]; dup {
			return fmt.Errorf("symbol field %q listed twice", f)
		}
		seen[f] = struct{}{}
	}
	return nil
}

// FirstDifference walks fields in order and returns the first one whose
// values differ by exact string equality. The bool is false when all match.
func FirstDifference(stored, incoming Attributes, fields []Field) (Field, bool, error) {
	for _, f := range fields {
		a, err := stored.Get(f)
		if err != nil {
			return "", false, err
		}
		b, err := incoming.Get(f)
		if err != nil {
			return "", false, err
		}
		if a != b {
			return f, true, nil
		}
	}
	return "", false, nil
}
