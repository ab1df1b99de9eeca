package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/shala-api/internal/config"
	"github.com/BruksfildServices01/shala-api/internal/domain/teacher"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

const ContextTeacherID = "teacherID"

// TeacherProvisioner resolves a verified identity to its Teacher row.
type TeacherProvisioner interface {
	Execute(ctx context.Context, id uuid.UUID, ident teacher.Identity) (*models.Teacher, error)
}

// IdentityClaims is the access token issued by the identity provider.
type IdentityClaims struct {
	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"user_metadata"`
	jwt.RegisteredClaims
}

type UserMetadata struct {
	Name      string `json:"name"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

func AuthMiddleware(cfg *config.Config, provisioner TeacherProvisioner) gin.HandlerFunc {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if cfg.AuthJWTIssuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.AuthJWTIssuer))
	}
	parser := jwt.NewParser(opts...)
	secret := []byte(cfg.AuthJWTSecret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Sign in to continue.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Sign in to continue.")
			c.Abort()
			return
		}

		var claims IdentityClaims
		token, err := parser.ParseWithClaims(parts[1], &claims, func(*jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Your session has expired. Sign in again.")
			c.Abort()
			return
		}

		id, err := uuid.Parse(claims.Subject)
		if err != nil {
			httperr.Unauthorized(c, "invalid_token_payload", "Your session is not valid. Sign in again.")
			c.Abort()
			return
		}

		t, err := provisioner.Execute(c.Request.Context(), id, teacher.Identity{
			ID:        claims.Subject,
			Email:     claims.Email,
			Name:      claims.UserMetadata.Name,
			FullName:  claims.UserMetadata.FullName,
			AvatarURL: claims.UserMetadata.AvatarURL,
		})
		if err != nil {
			httperr.FromError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextTeacherID, t.ID)
		c.Next()
	}
}

// TeacherID returns the acting teacher set by AuthMiddleware.
func TeacherID(c *gin.Context) uuid.UUID {
	return c.MustGet(ContextTeacherID).(uuid.UUID)
}
