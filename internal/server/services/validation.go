package services

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/localswap/internal/common"
	"github.com/go-playground/validator/v10"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	phonePattern    = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names, which are also the names clients use.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return v
}

// validationMessages maps "<field>.<tag>" to the message shown to users.
var validationMessages = map[string]string{
	"title.required":            "Titolo richiesto",
	"title.max":                 "Titolo troppo lungo",
	"description.required":      "Descrizione richiesta",
	"description.max":           "Descrizione troppo lunga",
	"kind.required":             "Tipo di inserzione richiesto",
	"kind.oneof":                "Tipo di inserzione non valido",
	"category.required":         "Categoria richiesta",
	"type.required":             "Tipo richiesto",
	"price.gte":                 "Prezzo non valido",
	"price.lte":                 "Prezzo troppo alto",
	"lat.gte":                   "Latitudine non valida",
	"lat.lte":                   "Latitudine non valida",
	"lng.gte":                   "Longitudine non valida",
	"lng.lte":                   "Longitudine non valida",
	"address_hint.max":          "Indirizzo troppo lungo",
	"image_urls.max":            "Massimo 3 immagini",
	"content.required":          "Messaggio richiesto",
	"content.max":               "Messaggio troppo lungo",
	"username.min":              "Username troppo corto",
	"username.max":              "Username troppo lungo",
	"username.username":         "Solo lettere, numeri e underscore",
	"full_name.max":             "Nome troppo lungo",
	"phone.phone":               "Numero di telefono non valido",
	"avatar_url.url":            "URL avatar non valido",
	"rating.min":                "Valutazione da 1 a 5",
	"rating.max":                "Valutazione da 1 a 5",
	"comment.max":               "Commento troppo lungo",
	"transaction_type.required": "Tipo di transazione richiesto",
	"transaction_type.oneof":    "Tipo di transazione non valido",
}

// validateStruct runs the struct tags of s and turns the first failure into
// a *common.ValidationError with a user-facing message.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	fe := verrs[0]
	msg, ok := validationMessages[fe.Field()+"."+fe.Tag()]
	if !ok {
		msg = fmt.Sprintf("Campo %s non valido", fe.Field())
	}
	return common.NewValidationError(fe.Field(), msg)
}
