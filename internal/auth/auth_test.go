package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testIssuer = "test-issuer"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestParseValidToken(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{
		"iss":       testIssuer,
		"sub":       "user-1",
		"tenant_id": "tenant-1",
		"scopes":    []string{ScopeWrappedWrite, ScopeWrappedRead},
		"exp":       time.Now().Add(time.Hour).Unix(),
	})

	claims, err := Parse(signed, Config{Secret: testSecret, Issuer: testIssuer})
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "tenant-1", claims.TenantID)
	require.True(t, claims.HasScope(ScopeWrappedWrite))
	require.True(t, claims.HasScope(ScopeWrappedRead))
	require.False(t, claims.HasScope("other:scope"))
}

func TestParseSpaceSeparatedScopes(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{
		"iss":       testIssuer,
		"sub":       "user-1",
		"tenant_id": "tenant-1",
		"scopes":    ScopeWrappedWrite + " " + ScopeWrappedRead,
		"exp":       time.Now().Add(time.Hour).Unix(),
	})

	claims, err := Parse(signed, Config{Secret: testSecret, Issuer: testIssuer})
	require.NoError(t, err)
	require.True(t, claims.HasScope(ScopeWrappedWrite))
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{
		"iss":       "someone-else",
		"sub":       "user-1",
		"tenant_id": "tenant-1",
		"exp":       time.Now().Add(time.Hour).Unix(),
	})

	_, err := Parse(signed, Config{Secret: testSecret, Issuer: testIssuer})
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{
		"iss":       testIssuer,
		"sub":       "user-1",
		"tenant_id": "tenant-1",
		"exp":       time.Now().Add(-time.Hour).Unix(),
	})

	_, err := Parse(signed, Config{Secret: testSecret, Issuer: testIssuer})
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRequiresTenant(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{
		"iss": testIssuer,
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := Parse(signed, Config{Secret: testSecret, Issuer: testIssuer})
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestMiddlewareSkipsProbeEndpoints(t *testing.T) {
	mw := NewMiddleware(Config{Secret: testSecret, Issuer: testIssuer})

	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, path := range []string{"/healthz", "/metrics"} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rr.Code, path)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/summaries", nil))
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMiddlewareAttachesClaims(t *testing.T) {
	mw := NewMiddleware(Config{Secret: testSecret, Issuer: testIssuer})

	signed := signToken(t, jwt.MapClaims{
		"iss":       testIssuer,
		"sub":       "user-1",
		"tenant_id": "tenant-1",
		"scopes":    []string{ScopeWrappedRead},
		"exp":       time.Now().Add(time.Hour).Unix(),
	})

	var seen *Claims
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/summaries?user_id=user-1", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, seen)
	require.Equal(t, "tenant-1", seen.TenantID)
}
