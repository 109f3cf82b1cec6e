package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRouteConfig(t *testing.T) {
	valid := RouteConfig{
		DefaultTitle: "Shop",
		Routes: []Route{
			{Path: "/", Name: "Index", Redirect: "/home"},
			{Path: "/home", Name: "Home"},
			{Path: "/product/:id", Name: "ProductDetail"},
			{Path: "/cart", Name: "Cart", RequiresAuth: true},
			{Path: "*", Name: "NotFound"},
		},
	}
	require.NoError(t, ValidateRouteConfig(valid))

	tests := []struct {
		name       string
		routes     []Route
		wantIndex  int
		wantReason string
	}{
		{
			name:       "empty_path",
			routes:     []Route{{Path: ""}},
			wantIndex:  0,
			wantReason: "path must be non-empty",
		},
		{
			name:       "path_without_leading_slash",
			routes:     []Route{{Path: "/home"}, {Path: "cart"}},
			wantIndex:  1,
			wantReason: "path must start with /",
		},
		{
			name:       "duplicate_path",
			routes:     []Route{{Path: "/home"}, {Path: "/home"}},
			wantIndex:  1,
			wantReason: "duplicate path /home",
		},
		{
			name:       "two_catch_alls",
			routes:     []Route{{Path: "*"}, {Path: "/home"}, {Path: "*"}},
			wantIndex:  2,
			wantReason: "at most one catch-all route is allowed",
		},
		{
			name:       "unnamed_param_segment",
			routes:     []Route{{Path: "/product/:"}},
			wantIndex:  0,
			wantReason: "param segment must have a name",
		},
		{
			name:       "redirect_target_missing",
			routes:     []Route{{Path: "/", Redirect: "/home"}},
			wantIndex:  0,
			wantReason: "redirect target /home is not a route",
		},
		{
			name:       "redirect_route_requiring_auth",
			routes:     []Route{{Path: "/", Redirect: "/home", RequiresAuth: true}, {Path: "/home"}},
			wantIndex:  0,
			wantReason: "redirect route cannot require auth",
		},
		{
			name:       "redirect_chain",
			routes:     []Route{{Path: "/", Redirect: "/old"}, {Path: "/old", Redirect: "/home"}, {Path: "/home"}},
			wantIndex:  0,
			wantReason: "redirect target /old is itself a redirect",
		},
		{
			name:       "redirect_cycle",
			routes:     []Route{{Path: "/a", Redirect: "/b"}, {Path: "/b", Redirect: "/a"}},
			wantIndex:  0,
			wantReason: "redirect target /b is itself a redirect",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRouteConfig(RouteConfig{Routes: tt.routes})
			require.Error(t, err)

			var cfgErr *RouteConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantIndex, cfgErr.Index)
			assert.Equal(t, tt.wantReason, cfgErr.Reason)
		})
	}
}

func TestRouteConfigError_Error(t *testing.T) {
	err := &RouteConfigError{Index: 3, Reason: "duplicate path /home"}
	assert.Equal(t, "route[3]: duplicate path /home", err.Error())
}
