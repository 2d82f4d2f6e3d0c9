package http

import (
	"net/http"

	"github.com/fleshka4/tradingpair/internal/transport/http/validate"
)

func (s *Server) handleApproveAsset(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.ApproveAssetRequestValidate(r)
	if err != nil {
		s.writeRequestError(w, code, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	if err := s.svc.ApproveAsset(ctx, *req); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAssetBalance(w http.ResponseWriter, r *http.Request) {
	asset, code, err := validate.PathAddress(r, "asset")
	if err != nil {
		s.writeRequestError(w, code, err)
		return
	}
	account, code, err := validate.PathAddress(r, "account")
	if err != nil {
		s.writeRequestError(w, code, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	balance, err := s.svc.AssetBalance(ctx, asset, account)
	s.writeAmount(w, balance, err)
}

func (s *Server) handleAssetAllowance(w http.ResponseWriter, r *http.Request) {
	asset, code, err := validate.PathAddress(r, "asset")
	if err != nil {
		s.writeRequestError(w, code, err)
		return
	}
	owner, code, err := validate.QueryAddress(r, "owner")
	if err != nil {
		s.writeRequestError(w, code, err)
		return
	}
	spender, code, err := validate.QueryAddress(r, "spender")
	if err != nil {
		s.writeRequestError(w, code, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	allowance, err := s.svc.AssetAllowance(ctx, asset, owner, spender)
	s.writeAmount(w, allowance, err)
}
