package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/shala-api/internal/config"
	"github.com/BruksfildServices01/shala-api/internal/domain/teacher"
	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

const testSecret = "test-secret"

type fakeProvisioner struct {
	teacherID uuid.UUID
	err       error
	got       teacher.Identity
	calls     int
}

func (f *fakeProvisioner) Execute(_ context.Context, _ uuid.UUID, ident teacher.Identity) (*models.Teacher, error) {
	f.calls++
	f.got = ident
	if f.err != nil {
		return nil, f.err
	}
	return &models.Teacher{ID: f.teacherID}, nil
}

func newAuthRouter(cfg *config.Config, p TeacherProvisioner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(cfg, p), func(c *gin.Context) {
		c.String(http.StatusOK, TeacherID(c).String())
	})
	return r
}

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims IdentityClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims(sub string) IdentityClaims {
	return IdentityClaims{
		Email: "asha@example.com",
		UserMetadata: UserMetadata{
			FullName: "Asha Rao",
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Issuer:    "https://auth.example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func doAuth(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	cfg := &config.Config{AuthJWTSecret: testSecret, AuthJWTIssuer: "https://auth.example.com"}
	p := &fakeProvisioner{teacherID: uuid.New()}
	r := newAuthRouter(cfg, p)

	sub := uuid.NewString()
	w := doAuth(r, "Bearer "+signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims(sub)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, p.teacherID.String(), w.Body.String())
	assert.Equal(t, sub, p.got.ID)
	assert.Equal(t, "asha@example.com", p.got.Email)
	assert.Equal(t, "Asha Rao", p.got.FullName)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	cfg := &config.Config{AuthJWTSecret: testSecret, AuthJWTIssuer: "https://auth.example.com"}
	sub := uuid.NewString()

	expired := validClaims(sub)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	otherIssuer := validClaims(sub)
	otherIssuer.Issuer = "https://evil.example.com"

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"missing header", "", "missing_authorization_header"},
		{"not bearer", "Basic abc", "invalid_authorization_header"},
		{"garbage token", "Bearer not-a-jwt", "invalid_token"},
		{"wrong secret", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), validClaims(sub)), "invalid_token"},
		{"wrong alg", "Bearer " + signToken(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims(sub)), "invalid_token"},
		{"expired", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), expired), "invalid_token"},
		{"wrong issuer", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), otherIssuer), "invalid_token"},
		{"subject not uuid", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("user-1")), "invalid_token_payload"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &fakeProvisioner{teacherID: uuid.New()}
			w := doAuth(newAuthRouter(cfg, p), tc.header)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tc.code)
			assert.Zero(t, p.calls)
		})
	}
}

func TestAuthMiddleware_ProvisionerFailure(t *testing.T) {
	cfg := &config.Config{AuthJWTSecret: testSecret}
	p := &fakeProvisioner{err: httperr.ErrInternal("storage_failure", "Something went wrong. Please try again.")}
	r := newAuthRouter(cfg, p)

	w := doAuth(r, "Bearer "+signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims(uuid.NewString())))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "storage_failure")
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example.com"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://other.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
