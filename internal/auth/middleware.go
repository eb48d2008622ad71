package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shopbot-service/internal/domain"
	"github.com/spec-kit/shopbot-service/internal/repository"
	apperrors "github.com/spec-kit/shopbot-service/pkg/util"
)

const shopKey = "auth_shop"

// ShopMiddleware validates platform session tokens and resolves the shop
// aggregate for the request. The shop row is created on first sight of its
// domain.
type ShopMiddleware struct {
	verifier *SessionTokenVerifier
	shops    repository.ShopRepository
}

// NewShopMiddleware constructs middleware.
func NewShopMiddleware(verifier *SessionTokenVerifier, shops repository.ShopRepository) *ShopMiddleware {
	return &ShopMiddleware{verifier: verifier, shops: shops}
}

// Handle enforces authentication for admin routes.
func (m *ShopMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.verifier.Verify(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid session token")
	}

	shop := &domain.Shop{Domain: claims.ShopDomain()}
	if err := m.shops.Upsert(c.Context(), shop); err != nil {
		return apperrors.MapError(err)
	}

	c.Locals(shopKey, shop)
	return c.Next()
}

// ShopFromContext retrieves the authenticated shop.
func ShopFromContext(c *fiber.Ctx) (*domain.Shop, bool) {
	val := c.Locals(shopKey)
	if val == nil {
		return nil, false
	}
	shop, ok := val.(*domain.Shop)
	return shop, ok
}
