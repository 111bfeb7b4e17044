package server

import (
	"encoding/json"
	"net/http"

	"github.com/b2bfusion/fusion-engine/internal/fetch"
	"github.com/b2bfusion/fusion-engine/internal/ingestion"
	"github.com/b2bfusion/fusion-engine/internal/types"
)

// UploadResponse reports how many fragments an upload produced.
type UploadResponse struct {
	CompanyID string `json:"company_id"`
	Source    string `json:"source"`
	Fragments int    `json:"fragments_stored"`
}

// handleUploadFor returns the upload handler for one source pool. The four
// upload routes share this body; only the target pool differs.
func (s *Server) handleUploadFor(source types.Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.UploadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
		if err := req.Validate(); err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}

		text := req.Text
		if req.URL != "" {
			fetched, err := fetch.PageText(r.Context(), req.URL, fetch.SelectorsFor(source), false)
			if err != nil {
				s.errorResponse(w, http.StatusBadGateway, "failed to fetch URL: "+err.Error())
				return
			}
			text = fetched
		}

		cleaned := ingestion.CleanText(text)
		if cleaned == "" {
			s.errorResponse(w, http.StatusBadRequest, "upload contains no usable text")
			return
		}

		chunks := ingestion.Chunk(cleaned, ingestion.DefaultChunkSize)
		stored := 0
		for i, chunk := range chunks {
			vec, err := s.embedder.Embed(r.Context(), chunk)
			if err != nil {
				s.errorResponse(w, http.StatusBadGateway, "embedding failed: "+err.Error())
				return
			}
			fragment := &types.Fragment{
				CompanyID:  req.CompanyID,
				Source:     source,
				Text:       chunk,
				Embedding:  vec,
				ChunkIndex: i,
			}
			if err := s.fragments.InsertFragment(r.Context(), fragment); err != nil {
				s.errorResponse(w, http.StatusInternalServerError, "failed to store fragment: "+err.Error())
				return
			}
			stored++
		}

		s.jsonResponse(w, http.StatusCreated, UploadResponse{
			CompanyID: req.CompanyID,
			Source:    string(source),
			Fragments: stored,
		})
	}
}
