package auth

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var ErrInvalidToken = errors.New("invalid or expired token")

var jwtSecretKey []byte

const tokenTTL = 24 * time.Hour

func init() {
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		log.Println("Warning: JWT_SECRET_KEY not set, using default insecure key")
		secret = "insecure-development-jwt-key"
	}
	jwtSecretKey = []byte(secret)
}

// Identity is the resolved caller passed to every protected operation.
type Identity struct {
	UserID   bson.ObjectID
	Username string
	Email    string
	IsAdmin  bool
}

func SignToken(userID bson.ObjectID, username, email string, isAdmin bool) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID.Hex(),
		"username": username,
		"email":    email,
		"is_admin": isAdmin,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecretKey)
}

func ParseToken(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtSecretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	rawID, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, err := bson.ObjectIDFromHex(rawID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	identity := &Identity{UserID: userID}
	if username, ok := claims["username"].(string); ok {
		identity.Username = username
	}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if isAdmin, ok := claims["is_admin"].(bool); ok {
		identity.IsAdmin = isAdmin
	}
	return identity, nil
}
