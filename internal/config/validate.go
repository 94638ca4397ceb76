package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateDownload(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if err := validateURL("catalog.data_url", c.Catalog.DataURL); err != nil {
		return err
	}
	if err := validateURL("catalog.asset_base_url", c.Catalog.AssetBaseURL); err != nil {
		return err
	}
	if strings.ContainsAny(c.Catalog.AssetName, "/\\") {
		return fmt.Errorf("catalog.asset_name must be a bare filename, got %q", c.Catalog.AssetName)
	}
	return nil
}

func (c *Config) validateDownload() error {
	if c.Download.Workers > 64 {
		return fmt.Errorf("download.workers must be at most 64, got %d", c.Download.Workers)
	}
	return nil
}

func validateURL(field, value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", field, value)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s is missing a host: %q", field, value)
	}
	return nil
}
