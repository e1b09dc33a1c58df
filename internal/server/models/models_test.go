package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogsForKind(t *testing.T) {
	assert.True(t, HasOption(CategoriesForKind(KindObject), "elettronica"))
	assert.False(t, HasOption(CategoriesForKind(KindObject), "pulizie"))
	assert.True(t, HasOption(CategoriesForKind(KindService), "pet_care"))
	assert.Len(t, CategoriesForKind(KindService), 8)

	assert.True(t, HasOption(TypesForKind(KindObject), "scambio"))
	assert.False(t, HasOption(TypesForKind(KindObject), "offro"))
	assert.True(t, HasOption(TypesForKind(KindService), "cerco"))

	assert.Nil(t, CategoriesForKind("vehicle"))
	assert.Nil(t, TypesForKind(""))
}

func TestItemStatus_Valid(t *testing.T) {
	for _, s := range []ItemStatus{StatusActive, StatusReserved, StatusSold, StatusCompleted, StatusExpired} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, ItemStatus("archived").Valid())
}

func TestConversation_Participants(t *testing.T) {
	c := &Conversation{RequesterID: "r", OwnerID: "o"}
	assert.Equal(t, "o", c.OtherParty("r"))
	assert.Equal(t, "r", c.OtherParty("o"))
	assert.True(t, c.HasParticipant("o"))
	assert.False(t, c.HasParticipant("x"))
}

func TestReputationLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0, "Nuovo"},
		{0.9, "Nuovo"},
		{1, "Principiante"},
		{3.5, "Affidabile"},
		{4.2, "Esperto"},
		{4.5, "Top Trader"},
		{5, "Top Trader"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ReputationLabel(tt.score))
	}
}
