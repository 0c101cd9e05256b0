package namelab

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// HashPassword computes the hex SHA-512 digest the API expects instead of a
// plaintext password. This is a transport convention, not a replacement for
// server-side hashing.
func HashPassword(password string) string {
	sum := sha512.Sum512([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Login exchanges credentials for an opaque session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := loginRequest{Email: email, Password: HashPassword(password)}
	var out loginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}
