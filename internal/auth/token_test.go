package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestSignAndParseToken(t *testing.T) {
	userID := bson.NewObjectID()

	token, err := SignToken(userID, "ana", "ana@example.com", true)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	identity, err := ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, "ana", identity.Username)
	assert.Equal(t, "ana@example.com", identity.Email)
	assert.True(t, identity.IsAdmin)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
