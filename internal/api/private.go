package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"vcdesk/pkg/market"

	"go.uber.org/zap"
)

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.assets.ListAssets(r.Context(), owner(r.Context()), s.exchange, r.PathValue("base"))
	if err != nil {
		s.storeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assets)
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	var asset market.Asset
	if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
		writeFailure(w, http.StatusBadRequest, resultInvalidRequest)
		return
	}
	// The path decides the base
	asset.Base = r.PathValue("base")
	asset.UUID = ""

	created, err := s.assets.CreateAsset(r.Context(), owner(r.Context()), s.exchange, asset)
	if err != nil {
		s.storeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	removed, err := s.assets.DeleteAsset(r.Context(), owner(r.Context()), s.exchange,
		r.PathValue("base"), r.PathValue("vcType"), r.PathValue("id"))
	if err != nil {
		s.storeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, removed)
}

func (s *Server) handleUpdateAssets(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("mode") != market.MergeMode {
		writeFailure(w, http.StatusBadRequest, resultUnsupportedPutMode)
		return
	}

	var ids []string
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
		writeFailure(w, http.StatusBadRequest, resultInvalidRequest)
		return
	}

	merged, err := s.assets.MergeAssets(r.Context(), owner(r.Context()), s.exchange,
		r.PathValue("base"), r.PathValue("vcType"), ids)
	if err != nil {
		s.storeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, merged)
}

func (s *Server) handleListTickers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tickers.ByBase(r.PathValue("base")))
}

func (s *Server) storeFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, market.ErrAssetNotFound):
		writeFailure(w, http.StatusNotFound, resultNotFound)
	case errors.Is(err, market.ErrInvalidAsset):
		writeFailure(w, http.StatusBadRequest, resultInvalidRequest)
	default:
		s.logger.Error("asset store failure",
			zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
		writeFailure(w, http.StatusInternalServerError, resultInternalError)
	}
}
