package model

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Source is a CRM-like origin records are extracted from.
type Source struct {
	ID     string `json:"id" bson:"_id"`
	Name   string `json:"name" bson:"name"`
	APIURL string `json:"apiUrl,omitempty" bson:"api_url,omitempty"`
}

// Template names a field mapping available for a given source.
type Template struct {
	ID       string `json:"id" bson:"_id"`
	Name     string `json:"name" bson:"name"`
	SourceID string `json:"sourceId" bson:"source_id"`
}

// Destination is a deposit target for the generated CSV.
type Destination struct {
	ID   string `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
}

// CreateSourceRequest is the body of POST /admin/sources.
type CreateSourceRequest struct {
	Name   string `json:"name"`
	APIURL string `json:"apiUrl,omitempty"`
}

// Validate validates the source creation request
func (r *CreateSourceRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if len(r.Name) > 255 {
		return errors.New("name must be 255 characters or less")
	}
	if r.APIURL != "" {
		if err := validateHTTPURL(r.APIURL); err != nil {
			return fmt.Errorf("apiUrl validation failed: %w", err)
		}
	}
	return nil
}

// CreateTemplateRequest is the body of POST /admin/templates.
type CreateTemplateRequest struct {
	Name     string `json:"name"`
	SourceID string `json:"sourceId"`
}

// Validate validates the template creation request
func (r *CreateTemplateRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if r.SourceID == "" {
		return errors.New("sourceId is required")
	}
	return nil
}

// ProbeAuth carries the optional credentials injected by the test-source probe.
type ProbeAuth struct {
	Type   string `json:"type"`   // "bearer" | "api-key" | "none"
	Token  string `json:"token,omitempty"`
	APIKey string `json:"apiKey,omitempty"`
	Header string `json:"header,omitempty"` // header name for api-key auth, defaults to X-API-Key
}

// Validate validates probe auth configuration
func (a *ProbeAuth) Validate() error {
	switch strings.ToLower(a.Type) {
	case "bearer":
		if a.Token == "" {
			return errors.New("token required for bearer auth")
		}
	case "api-key":
		if a.APIKey == "" {
			return errors.New("apiKey required for api-key auth")
		}
	case "none", "":
		// No validation needed
	default:
		return fmt.Errorf("invalid auth type: %s (must be 'bearer', 'api-key', or 'none')", a.Type)
	}
	return nil
}

// ProbeRequest is the body of POST /admin/test-source.
type ProbeRequest struct {
	URL         string    `json:"url"`
	Auth        ProbeAuth `json:"auth,omitempty"`
	RecordsPath string    `json:"recordsPath,omitempty"` // optional JSONPath into the preview body
}

// Validate validates the probe request
func (r *ProbeRequest) Validate() error {
	if r.URL == "" {
		return errors.New("url is required")
	}
	if err := validateHTTPURL(r.URL); err != nil {
		return err
	}
	if err := r.Auth.Validate(); err != nil {
		return fmt.Errorf("auth validation failed: %w", err)
	}
	return nil
}

func validateHTTPURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("URL must start with http:// or https://")
	}
	return nil
}
