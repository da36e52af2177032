package serverutils

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JwtMiddleware validates the bearer token and stores the caller identity
// ("sub") and granted scopes in request locals.
func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Missing token"))
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Invalid token"))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Invalid claims"))
	}

	sub, _ := claims["sub"].(string)
	scope, _ := claims["scope"].(string)

	ctx.Locals("sub", sub)
	ctx.Locals("scope", scope)
	return ctx.Next()
}

// RequireScope guards a write route with a named permission. Must run after
// JwtMiddleware. The scope claim is a space-delimited list.
func RequireScope(required string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		scope, _ := ctx.Locals("scope").(string)
		for _, granted := range strings.Fields(scope) {
			if granted == required {
				return ctx.Next()
			}
		}
		return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse("Insufficient scope"))
	}
}
