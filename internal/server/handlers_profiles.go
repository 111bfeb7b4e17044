package server

import (
	"encoding/json"
	"net/http"

	"github.com/b2bfusion/fusion-engine/internal/types"
)

// GenerateResponse carries the pipeline result for one company.
type GenerateResponse struct {
	Profile  *types.CompanyProfile  `json:"profile"`
	Industry *types.IndustryMapping `json:"industry_mapping"`
}

// handleGenerateProfile runs the full fusion pipeline synchronously. The
// profile write happens before classification, so a classification failure
// still leaves a fresh profile queryable.
func (s *Server) handleGenerateProfile(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, mapping, err := s.generator.Run(r.Context(), req.CompanyID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, GenerateResponse{
		Profile:  profile,
		Industry: mapping,
	})
}

// handleGetProfile returns the stored profile for a company.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	companyID := r.PathValue("company_id")
	if companyID == "" {
		s.errorResponse(w, http.StatusBadRequest, "company_id is required")
		return
	}

	profile, err := s.profiles.GetCompanyProfile(r.Context(), companyID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load profile: "+err.Error())
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "no profile for company: "+companyID)
		return
	}

	s.jsonResponse(w, http.StatusOK, profile)
}

// handleGetIndustry returns the stored industry mapping for a company.
func (s *Server) handleGetIndustry(w http.ResponseWriter, r *http.Request) {
	companyID := r.PathValue("company_id")
	if companyID == "" {
		s.errorResponse(w, http.StatusBadRequest, "company_id is required")
		return
	}

	mapping, err := s.mappings.GetIndustryMapping(r.Context(), companyID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to load mapping: "+err.Error())
		return
	}
	if mapping == nil {
		s.errorResponse(w, http.StatusNotFound, "no industry mapping for company: "+companyID)
		return
	}

	s.jsonResponse(w, http.StatusOK, mapping)
}
