package student

import (
	"sort"
	"strings"

	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

const (
	MaxTagLength   = 50
	MaxNotesLength = 5000

	DefaultPerPage = 20
	MaxPerPage     = 100
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// ContactColumns are overwritten on every registration: the latest
// submission always wins over stored data.
var ContactColumns = []string{
	"first_name",
	"last_name",
	"name",
	"date_of_birth",
	"gender",
	"phone",
	"emergency_contact_name",
	"emergency_contact_relation",
	"emergency_contact_phone",
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func FullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// ApplyContact copies the registration-owned fields of src onto dst.
func ApplyContact(dst *models.Student, src *models.Student) {
	dst.FirstName = src.FirstName
	dst.LastName = src.LastName
	dst.Name = src.Name
	dst.DateOfBirth = src.DateOfBirth
	dst.Gender = src.Gender
	dst.Phone = src.Phone
	dst.EmergencyContactName = src.EmergencyContactName
	dst.EmergencyContactRelation = src.EmergencyContactRelation
	dst.EmergencyContactPhone = src.EmergencyContactPhone
}

// NormalizeTags trims, de-duplicates and sorts tags. Order carries no meaning.
func NormalizeTags(tags []string) ([]string, error) {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))

	for _, raw := range tags {
		tag := strings.TrimSpace(raw)
		if tag == "" || len(tag) > MaxTagLength {
			return nil, httperr.ErrValidation("tags", "each tag must be between 1 and 50 characters")
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}

	sort.Strings(out)
	return out, nil
}
