package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NoNumber marks an address whose resolver record carried no house number.
const NoNumber = "-1"

// States lists the accepted two-letter state codes.
var States = []string{
	"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO", "MA", "MS", "MT", "MG", "PA",
	"PB", "PR", "PE", "PI", "RJ", "RN", "RS", "RO", "RR", "SC", "SP", "SE", "TO",
}

var (
	zipCodePattern   = regexp.MustCompile(`^\d{8}$`)
	addressValidator = newAddressValidator()
)

func newAddressValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("cep", func(fl validator.FieldLevel) bool {
		return zipCodePattern.MatchString(fl.Field().String())
	})
	return v
}

// Address is a postal address bound to exactly one owning user.
type Address struct {
	ID           int64  `json:"id"`
	Street       string `json:"street"        validate:"required,max=255"`
	Number       string `json:"number"        validate:"required,max=20"`
	Complement   string `json:"complement"    validate:"max=255"`
	Neighborhood string `json:"neighborhood"  validate:"required,max=255"`
	City         string `json:"city"          validate:"required,max=255"`
	State        string `json:"state"         validate:"required,oneof=AC AL AP AM BA CE DF ES GO MA MS MT MG PA PB PR PE PI RJ RN RS RO RR SC SP SE TO"`
	ZipCode      string `json:"zip_code"      validate:"required,cep"`
	OwnerUserID  int64  `json:"owner_user_id" validate:"required"`
}

// PostalRecord is the normalized answer of the postal resolver.
type PostalRecord struct {
	ZipCode      string
	Street       string
	Complement   string
	Number       string
	Neighborhood string
	City         string
	State        string
}

// ApplyPostalRecord overwrites every resolver-owned field of a with the
// values in r. Caller-submitted street, number, complement, neighborhood,
// city and state are discarded.
func (a *Address) ApplyPostalRecord(r *PostalRecord) {
	a.Street = r.Street
	a.Complement = r.Complement
	a.Neighborhood = r.Neighborhood
	a.City = r.City
	a.State = r.State

	a.Number = r.Number
	if strings.TrimSpace(a.Number) == "" {
		a.Number = NoNumber
	}

	a.ZipCode = strings.ReplaceAll(r.ZipCode, "-", "")
}

// Validate checks the field constraints of a fully merged address.
func (a *Address) Validate() error {
	if err := addressValidator.Struct(a); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return nil
}
