package validation

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	Init()
	os.Exit(m.Run())
}

type signupPayload struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Website  string `json:"website" binding:"omitempty,url"`
}

func bindJSON(t *testing.T, body string, dst any) error {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c.ShouldBindJSON(dst)
}

func TestToDetailsUsesJSONFieldNames(t *testing.T) {
	var p signupPayload
	err := bindJSON(t, `{"email":"not-an-email","password":"short"}`, &p)
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be at least 6 characters long", details["password"])
}

func TestToDetailsURLTag(t *testing.T) {
	var p signupPayload
	err := bindJSON(t, `{"name":"Ada","email":"ada@example.com","password":"s3cret!","website":"not a url"}`, &p)
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be a valid URL", details["website"])
	assert.Len(t, details, 1)
}

func TestToDetailsInvalidJSON(t *testing.T) {
	var p signupPayload
	err := bindJSON(t, `{"name":`, &p)
	require.Error(t, err)

	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
}

func TestToDetailsNilError(t *testing.T) {
	assert.Nil(t, ToDetails(nil))
}

func TestToDetailsDatetimeTag(t *testing.T) {
	type payload struct {
		From string `json:"from" binding:"required,datetime=2006-01-02"`
	}
	var p payload
	err := bindJSON(t, `{"from":"01/02/2020"}`, &p)
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be a valid date (2006-01-02)", details["from"])
}
