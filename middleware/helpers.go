package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

const (
	jwtClaimSubject = "sub"
	jwtClaimUserID  = "user_id"
)

// GetSubjectFromContext returns who signed the request, from "sub" or the provider's "user_id" claim.
func GetSubjectFromContext(ctx context.Context) (string, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return "", errors.New("user claims not found in context or invalid type")
	}

	for _, name := range []string{jwtClaimSubject, jwtClaimUserID} {
		switch v := claims[name].(type) {
		case string:
			if v != "" {
				return v, nil
			}
		case float64:
			if v != float64(int64(v)) {
				return "", fmt.Errorf("'%s' claim is not an integer: %f", name, v)
			}
			return fmt.Sprintf("%d", int64(v)), nil
		}
	}
	return "", fmt.Errorf("missing '%s' claim in token", jwtClaimSubject)
}
