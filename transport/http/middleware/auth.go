package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"studio/config"
	"studio/infras/jwt"
	"studio/infras/otel"
	"studio/permissions"
	"studio/shared/constant"
	"studio/shared/failure"
	"studio/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type internalCallKey struct{}

type Auth interface {
	// Auth validates the bearer token on every non-public route and stores the claims in the context.
	Auth(http.Handler) http.Handler
	// APIKey marks requests carrying the service API key as internal; they bypass Auth and RBAC.
	APIKey(http.Handler) http.Handler
}

type Role interface {
	// RBAC checks the caller's role against the route's rule. It must run after Auth.
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRole struct {
	jwt    jwt.JWT
	otel   otel.Otel
	table  *permissions.Table
	apiKey string
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, table *permissions.Table, cfg *config.Config) AuthRole {
	return &authRole{
		jwt:    jwtService,
		otel:   otel,
		table:  table,
		apiKey: cfg.App.APIKey,
	}
}

var tokenErrors = map[error]string{
	jwt.ErrExpiredToken:  "Token has expired",
	jwt.ErrInvalidClaim:  "Invalid token claims",
	jwt.ErrInvalidToken:  "Invalid token",
	jwt.ErrMissingHeader: "Missing authorization header",
	jwt.ErrInvalidHeader: "Invalid authorization header format",
}

func tokenMessage(err error) string {
	for target, message := range tokenErrors {
		if errors.Is(err, target) {
			return message
		}
	}

	return "Token validation failed"
}

func isInternal(ctx context.Context) bool {
	internal, _ := ctx.Value(internalCallKey{}).(bool)

	return internal
}

func (m *authRole) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		key := request.Header.Get(constant.RequestHeaderAPIKey)
		if key == "" {
			next.ServeHTTP(writer, request)

			return
		}

		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		if m.apiKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) != 1 {
			scope.TraceError(failure.ForbiddenError)
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		scope.SetAttribute("http.source", "internal")

		next.ServeHTTP(writer, request.WithContext(context.WithValue(ctx, internalCallKey{}, true)))
	})
}

func (m *authRole) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		if isInternal(ctx) || m.table.IsPublic(request.Method, routePattern(request)) {
			next.ServeHTTP(writer, request)

			return
		}

		ctx, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		token, err := jwt.ExtractTokenFromHeader(request.Header.Get(constant.RequestHeaderAuthorization))
		if err == nil {
			var claims *jwt.Claims

			claims, err = m.jwt.ValidateToken(token)
			if err == nil {
				scope.SetAttribute("user.role", claims.Role)

				ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
				ctx = context.WithValue(ctx, constant.ContextKeyUserName, claims.Name)
				ctx = context.WithValue(ctx, constant.ContextKeyUserPhone, claims.Phone)
				ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
				ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.ID)

				next.ServeHTTP(writer, request.WithContext(ctx))

				return
			}
		}

		denied := failure.Unauthorized(tokenMessage(err))
		scope.TraceError(denied)
		response.WithError(writer, denied)
	})
}

func (m *authRole) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		if isInternal(ctx) || !m.table.Enforce {
			next.ServeHTTP(writer, request)

			return
		}

		endpoint, _ := m.table.Lookup(request.Method, routePattern(request))
		role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if endpoint.Public || endpoint.Allows(role) {
			next.ServeHTTP(writer, request)

			return
		}

		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		scope.SetAttributes(map[string]any{"user.role": role, "allowed_roles": endpoint.Roles})
		scope.TraceError(failure.ForbiddenError)

		response.WithError(writer, failure.ForbiddenError)
	})
}

// routePattern resolves the registered chi pattern for the request, falling back to the raw path.
func routePattern(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path
	}

	if pattern := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path); pattern != "" {
		return pattern
	}

	return request.URL.Path
}
