package services

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/localswap/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct_ItalianMessages(t *testing.T) {
	tests := []struct {
		name      string
		in        any
		wantField string
		wantMsg   string
	}{
		{"empty message", MessageInput{Content: ""}, "content", "Messaggio richiesto"},
		{"short username", ProfileInput{Username: "ab"}, "username", "Username troppo corto"},
		{"bad username chars", ProfileInput{Username: "mario rossi"}, "username", "Solo lettere, numeri e underscore"},
		{"bad phone", ProfileInput{Phone: "abc"}, "phone", "Numero di telefono non valido"},
		{"rating out of range", RatingInput{RatedUserID: "u", Rating: 6, TransactionType: "vendo"}, "rating", "Valutazione da 1 a 5"},
		{"unmapped tag", RatingInput{Rating: 3, TransactionType: "vendo"}, "rated_user_id", "Campo rated_user_id non valido"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateStruct(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrorValidation))

			var ve *common.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.wantField, ve.Field)
			assert.Equal(t, tt.wantMsg, ve.Message)
		})
	}
}

func TestValidateStruct_OK(t *testing.T) {
	assert.NoError(t, validateStruct(ProfileInput{Username: "mario_92", Phone: "+393331234567"}))
	assert.NoError(t, validateStruct(MessageInput{Content: "ciao"}))
}
