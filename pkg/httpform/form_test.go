package httpform

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"katydid-common-record/pkg/conditional"
	"katydid-common-record/pkg/rule"
)

func newRouter(rs RuleSet) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/orders", Middleware(rs), func(c *gin.Context) {
		rec, ok := RecordFrom(c)
		if !ok || rec == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "record missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"shipping_method": rec.Attr("shipping_method")})
	})
	return r
}

func orderRules() RuleSet {
	return RuleSet{
		"shipping_method": conditional.New(conditional.Config{
			Primary: []rule.Spec{
				rule.NewSpec("required"),
				rule.NewSpec("in", "express", "standard"),
			},
		}),
	}
}

func postForm(r *gin.Engine, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMiddleware_FormValid(t *testing.T) {
	r := newRouter(orderRules())

	w := postForm(r, url.Values{"shipping_method": {"express"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "express")
}

func TestMiddleware_FormInvalid(t *testing.T) {
	r := newRouter(orderRules())

	tests := []struct {
		name   string
		values url.Values
		want   string
	}{
		{"缺少必填字段", url.Values{}, "cannot be blank"},
		{"枚举外的值", url.Values{"shipping_method": {"teleport"}}, "allowed values"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postForm(r, tt.values)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Contains(t, w.Body.String(), `"errors"`)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}

func TestMiddleware_JSONBody(t *testing.T) {
	r := newRouter(orderRules())

	req := httptest.NewRequest(http.MethodPost, "/orders",
		strings.NewReader(`{"shipping_method":"standard"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestMiddleware_MalformedJSON(t *testing.T) {
	r := newRouter(orderRules())

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMiddleware_Misconfigured(t *testing.T) {
	rs := RuleSet{
		"shipping_method": conditional.New(conditional.Config{
			Dependents: []conditional.Dependent{{Attrs: "customer.country"}}, // 空规格列表
		}),
	}
	r := newRouter(rs)

	w := postForm(r, url.Values{"shipping_method": {"express"}})
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
