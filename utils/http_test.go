package utils

import "testing"

func TestGetUserAgent(t *testing.T) {
	app, c := testCtx(t, "/api/recipes/")
	defer app.ReleaseCtx(c)

	c.Request().Header.Set("User-Agent", "foodgram-client/1.2")
	if got := GetUserAgent(c); got != "foodgram-client/1.2" {
		t.Errorf("GetUserAgent() = %q, want foodgram-client/1.2", got)
	}
}

func TestGetIPAddress(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"forwarded-for first hop", map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, "10.0.0.1"},
		{"real-ip fallback", map[string]string{"X-Real-IP": "10.0.0.3"}, "10.0.0.3"},
		{"connection address", nil, "0.0.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, c := testCtx(t, "/api/recipes/")
			defer app.ReleaseCtx(c)

			for key, value := range tt.headers {
				c.Request().Header.Set(key, value)
			}
			if got := GetIPAddress(c); got != tt.want {
				t.Errorf("GetIPAddress() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetTokenKey(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"token scheme", "Token abc123", "abc123"},
		{"case-insensitive scheme", "token abc123", "abc123"},
		{"bearer rejected", "Bearer abc123", ""},
		{"missing header", "", ""},
		{"scheme only", "Token", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, c := testCtx(t, "/api/recipes/")
			defer app.ReleaseCtx(c)

			if tt.header != "" {
				c.Request().Header.Set("Authorization", tt.header)
			}
			if got := GetTokenKey(c); got != tt.want {
				t.Errorf("GetTokenKey(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}
