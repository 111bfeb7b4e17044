package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// UploadRequest represents an upload of source text for one company and one
// pool. Exactly one of Text or URL must be provided; URL uploads are fetched
// and reduced to plain text before chunking.
type UploadRequest struct {
	CompanyID string `json:"company_id" validate:"required,min=1"`
	Text      string `json:"text,omitempty"`
	URL       string `json:"url,omitempty" validate:"omitempty,url"`
}

// Validate validates the UploadRequest using the validator and the
// text-xor-url rule.
func (r *UploadRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.Text == "" && r.URL == "" {
		return fmt.Errorf("either text or url is required")
	}
	if r.Text != "" && r.URL != "" {
		return fmt.Errorf("text and url are mutually exclusive")
	}
	return nil
}

// GenerateProfileRequest triggers the fusion pipeline for a company.
type GenerateProfileRequest struct {
	CompanyID string `json:"company_id" validate:"required,min=1"`
}

// Validate validates the GenerateProfileRequest using the validator.
func (r *GenerateProfileRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// LoginRequest represents the operator login request.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}
