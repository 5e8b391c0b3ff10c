package util

import (
	"testing"
	"time"

	"brainbox_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{
		BaseModel: model.BaseModel{ID: 12},
		Email:     "stu@example.edu",
		Role:      model.Student,
	}

	token, err := GenerateJWT(user, "test-secret-key-1234567890abcdef", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "test-secret-key-1234567890abcdef")
	require.NoError(t, err)
	assert.Equal(t, uint(12), claims.UserID)
	assert.Equal(t, model.Student, claims.Role)
	assert.Equal(t, "stu@example.edu", claims.Email)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 1}, Email: "a@b.c", Role: model.Student}

	token, err := GenerateJWT(user, "correct-secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "wrong-secret")
	assert.Error(t, err)
}

func TestJWTRejectsExpired(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 1}, Email: "a@b.c", Role: model.Student}

	token, err := GenerateJWT(user, "correct-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "correct-secret")
	assert.Error(t, err)
}
