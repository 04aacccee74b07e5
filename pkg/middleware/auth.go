package middleware

import (
	"net/http"
	"strings"

	"bootcamp-platform/internal/data/repository"
	"bootcamp-platform/pkg/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

// SessionCookieName is the HTTP-only cookie carrying the signed session token
const SessionCookieName = "token"

// AuthToken resolves the caller from the session cookie (or a Bearer
// header as fallback) and puts userID + role on the request context
func AuthToken(config utils.JWTConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				utils.ResponseUnauthorized(w, "Unauthorized. No token provided")
				return
			}

			claims, err := utils.ParseSessionToken(token, config)
			if err != nil {
				logger.Warn("Invalid session token",
					zap.Error(err),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin requires the resolved user to be a company-approved admin.
// Role=admin alone is not enough: signups await approval with
// is_admin_verified=false and must be rejected here.
func Admin(userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Get user ID from context (set by AuthToken)
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			id, err := bson.ObjectIDFromHex(userID)
			if err != nil {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			// 2. Load user
			user, err := userRepo.FindByID(r.Context(), id)
			if err != nil {
				logger.Error("Admin check: failed to get user",
					zap.Error(err),
					zap.String("user_id", userID),
				)
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			// 3. Check admin authority
			if user == nil || !user.HasAdminAuthority() {
				logger.Warn("Admin check: insufficient privileges",
					zap.String("user_id", userID),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseForbidden(w, "Admin privileges required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}
