package config

import (
	"reflect"
	"testing"
)

func validConfig() Config {
	return Config{
		Directory: DirectoryConfig{URL: "ldap://dc01.example.com:389"},
		Query:     QueryConfig{SearchBase: "OU=Computers,DC=example,DC=com"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing url",
			mutate:  func(c *Config) { c.Directory.URL = "" },
			wantErr: "directory.url is required",
		},
		{
			name:    "bad url scheme",
			mutate:  func(c *Config) { c.Directory.URL = "http://dc01:80" },
			wantErr: `directory.url must start with ldap:// or ldaps://, got "http://dc01:80"`,
		},
		{
			name:    "missing search base",
			mutate:  func(c *Config) { c.Query.SearchBase = "" },
			wantErr: "query.search_base is required",
		},
		{
			name: "deny prefix not extending allow",
			mutate: func(c *Config) {
				c.Query.AllowPrefix = "SG"
				c.Query.DenyPrefixes = []string{"XG1"}
			},
			wantErr: `query.deny_prefixes entry "XG1" must extend allow_prefix "SG"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.wantErr {
				t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if cfg.Directory.TimeoutSec != 60 {
		t.Errorf("TimeoutSec = %d, want 60", cfg.Directory.TimeoutSec)
	}
	if cfg.Directory.PageSize != 1000 {
		t.Errorf("PageSize = %d, want 1000", cfg.Directory.PageSize)
	}
	if cfg.Query.AllowPrefix != "SG" {
		t.Errorf("AllowPrefix = %q, want SG", cfg.Query.AllowPrefix)
	}
	wantDeny := []string{"SGD", "SGG", "SGSAH", "SGSI", "SGSR", "SGT"}
	if !reflect.DeepEqual(cfg.Query.DenyPrefixes, wantDeny) {
		t.Errorf("DenyPrefixes = %v, want %v", cfg.Query.DenyPrefixes, wantDeny)
	}
	if cfg.Query.OutputFile == "" || cfg.Reconcile.GSNFile == "" || cfg.Reconcile.OutputFile == "" {
		t.Errorf("file defaults not applied: %+v", cfg)
	}
}

func TestApplyDefaults_KeepsExplicitFilter(t *testing.T) {
	cfg := validConfig()
	cfg.Query.AllowPrefix = "WS"
	cfg.ApplyDefaults()

	if cfg.Query.AllowPrefix != "WS" {
		t.Errorf("AllowPrefix = %q, want WS", cfg.Query.AllowPrefix)
	}
	if len(cfg.Query.DenyPrefixes) != 0 {
		t.Errorf("deny defaults must not apply to a custom allow prefix, got %v", cfg.Query.DenyPrefixes)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("ADRECON_TEST_HOST", "dc01.example.com")

	tests := []struct {
		in   string
		want string
	}{
		{"url: ldap://${ADRECON_TEST_HOST}:389", "url: ldap://dc01.example.com:389"},
		{"bind_dn: ${ADRECON_TEST_UNSET}", "bind_dn: "},
		{"bind_dn: ${ADRECON_TEST_UNSET:-cn=svc}", "bind_dn: cn=svc"},
	}
	for _, tt := range tests {
		if got := string(expandEnvVars([]byte(tt.in))); got != tt.want {
			t.Errorf("expandEnvVars(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
