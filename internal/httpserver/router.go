package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"storefront/internal/domain"
	accountsvc "storefront/internal/service/account"
	cartsvc "storefront/internal/service/cart"
	catalogsvc "storefront/internal/service/catalog"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountService is the slice of the account service the façade needs.
type AccountService interface {
	Signup(ctx context.Context, in accountsvc.SignupInput) (*domain.Account, error)
	Login(ctx context.Context, name, password string) (*domain.Account, string, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.Account, error)
	NameAvailable(ctx context.Context, name string) (bool, error)
	AccessTTLSeconds() int
}

// CatalogService exposes catalog reads plus the admin create path.
type CatalogService interface {
	List(ctx context.Context) ([]domain.Item, error)
	Get(ctx context.Context, id string) (*domain.Item, error)
	Add(ctx context.Context, in catalogsvc.AddInput) (*domain.Item, error)
}

// CartService is the cart engine boundary.
type CartService interface {
	OpenWithItem(ctx context.Context, in cartsvc.OpenInput) (*domain.Cart, error)
	ApplyDiscount(ctx context.Context, cartID, code string) (*domain.Cart, error)
	Finalize(ctx context.Context, cartID, accountID string) (*domain.Cart, error)
	Get(ctx context.Context, cartID string) (*domain.Cart, error)
	ListOrdered(ctx context.Context, accountID string) ([]domain.Cart, error)
}

// Deps bundles the services the router depends on.
type Deps struct {
	AccountSvc AccountService
	CatalogSvc CatalogService
	CartSvc    CartService
}

const accountCtxKey = "account"

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.AccountSvc == nil || deps.CatalogSvc == nil || deps.CartSvc == nil {
		return nil, errors.New("httpserver: missing service dependencies")
	}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/signup", signupHandler(deps.AccountSvc))
	router.POST("/login", loginHandler(deps.AccountSvc))
	router.GET("/accounts/name/:name", nameAvailableHandler(deps.AccountSvc))

	router.GET("/items", listItemsHandler(deps.CatalogSvc))
	router.GET("/items/:id", getItemHandler(deps.CatalogSvc))
	router.POST("/admin/items", addItemHandler(deps.CatalogSvc))

	router.GET("/carts/:id", getCartHandler(deps.CartSvc))
	router.POST("/carts/:id/discount/:code", applyDiscountHandler(deps.CartSvc))

	authed := router.Group("/", authMiddleware(deps.AccountSvc))
	authed.GET("/me", meHandler(deps.CartSvc))
	authed.POST("/carts", openCartHandler(deps.CartSvc))
	authed.POST("/carts/:id/purchase", purchaseHandler(deps.CartSvc))

	return router, nil
}

func authMiddleware(svc AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tok, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(tok) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		account, err := svc.LookupByToken(c.Request.Context(), strings.TrimSpace(tok))
		if err != nil {
			if errors.Is(err, accountsvc.ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.Set(accountCtxKey, account)
		c.Next()
	}
}

func currentAccount(c *gin.Context) (*domain.Account, bool) {
	v, ok := c.Get(accountCtxKey)
	if !ok {
		return nil, false
	}
	account, ok := v.(*domain.Account)
	return account, ok
}
