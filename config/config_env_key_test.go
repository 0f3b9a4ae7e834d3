package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"googleOAuth": map[string]any{
			"clientId":    "",
			"frontendUrl": "",
		},
		"database": map[string]any{
			"path": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "GOOGLEOAUTH_CLIENTID", want: "googleOAuth.clientId"},
		{envKey: "GOOGLEOAUTH_FRONTENDURL", want: "googleOAuth.frontendUrl"},
		{envKey: "DATABASE_PATH", want: "database.path"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
