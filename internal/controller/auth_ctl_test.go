package controller_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupBody(email string) map[string]interface{} {
	return map[string]interface{}{
		"name":     "Jonathan Michael Doe Smith",
		"email":    email,
		"password": "Password@123",
		"address":  "42 Test Street",
	}
}

func TestAuthController_Signup(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/auth/signup", "", signupBody("alice@test.com"))
	require.Equal(t, http.StatusCreated, w.Code)

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User registered successfully", body["message"])

	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "alice@test.com", user["email"])
	assert.Equal(t, "NORMAL_USER", user["role"])
	// 密码绝不回显
	assert.NotContains(t, user, "password")
}

func TestAuthController_SignupFieldErrors(t *testing.T) {
	env := newTestEnv(t)

	// 名字太短 + 邮箱非法
	body := signupBody("not-an-email")
	body["name"] = "Shorty"
	w := env.request(t, http.MethodPost, "/api/auth/signup", "", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode(t, w)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Validation error", resp["message"])

	errs := resp["errors"].([]interface{})
	require.Len(t, errs, 2)
	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.(map[string]interface{})["field"].(string)] = true
	}
	assert.True(t, fields["name"])
	assert.True(t, fields["email"])
}

func TestAuthController_SignupAdminGate(t *testing.T) {
	env := newTestEnv(t)

	body := signupBody("admin@test.com")
	body["role"] = "SYSTEM_ADMIN"
	w := env.request(t, http.MethodPost, "/api/auth/signup", "", body)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Admin signup is disabled.", decode(t, w)["message"])
}

func TestAuthController_Login(t *testing.T) {
	env := newTestEnv(t)
	env.request(t, http.MethodPost, "/api/auth/signup", "", signupBody("alice@test.com"))

	w := env.request(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email": "alice@test.com", "password": "Password@123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	// 密码错误
	w = env.request(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email": "alice@test.com", "password": "Wrong@12345",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decode(t, w)["message"])
}

func TestAuthController_LoginRateLimited(t *testing.T) {
	env := newTestEnv(t)
	env.request(t, http.MethodPost, "/api/auth/signup", "", signupBody("alice@test.com"))

	bad := map[string]interface{}{"email": "alice@test.com", "password": "Wrong@12345"}
	for i := 0; i < 5; i++ {
		w := env.request(t, http.MethodPost, "/api/auth/login", "", bad)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := env.request(t, http.MethodPost, "/api/auth/login", "", bad)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Too many login attempts. Please try again later.", decode(t, w)["message"])
}

func TestAuthController_Me(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "alice@test.com", "NORMAL_USER")

	w := env.request(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, "alice@test.com", user["email"])

	// 未带 Token
	w = env.request(t, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Access denied. No token provided.", decode(t, w)["message"])
}
