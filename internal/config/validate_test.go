package config

import (
	"strings"
	"testing"

	"github.com/verte-zerg/unigrade/internal/model"
)

func validConfig() model.Config {
	return model.Config{
		System:    "percentage",
		Credits:   "0.5",
		DBPath:    "/tmp/unigrade.db",
		LogLevel:  "info",
		LogFormat: "pretty",
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("expected valid config: %v", err)
	}
	cfg := validConfig()
	cfg.Credits = ""
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected empty credits to be allowed: %v", err)
	}
}

func TestValidateReportsFlag(t *testing.T) {
	cases := []struct {
		mutate func(*model.Config)
		want   string
	}{
		{func(c *model.Config) { c.System = "gpa" }, "--system must be one of: percentage, points"},
		{func(c *model.Config) { c.Credits = "0" }, "--credits must be a number greater than 0"},
		{func(c *model.Config) { c.Credits = "-1" }, "--credits must be a number greater than 0"},
		{func(c *model.Config) { c.Credits = "abc" }, "--credits must be a number greater than 0"},
		{func(c *model.Config) { c.DBPath = "" }, "--db must not be empty"},
		{func(c *model.Config) { c.LogFormat = "xml" }, "--log-format must be one of"},
	}
	for _, tc := range cases {
		cfg := validConfig()
		tc.mutate(&cfg)
		err := Validate(cfg)
		if err == nil {
			t.Fatalf("expected error containing %q", tc.want)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("expected %q, got %q", tc.want, err.Error())
		}
	}
}
