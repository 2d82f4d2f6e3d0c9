package http

import (
	"net/http"

	"github.com/fleshka4/tradingpair/internal/transport/http/dto"
	"github.com/fleshka4/tradingpair/internal/transport/http/validate"
)

func (s *Server) handleProvide(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.ProvideRequestValidate(r)
	if err != nil {
		s.writeRequestError(w, code, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	shares, err := s.svc.Provide(ctx, *req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dto.SharesResponse{Shares: shares.Dec()})
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.WithdrawRequestValidate(r)
	if err != nil {
		s.writeRequestError(w, code, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	out, err := s.svc.Withdraw(ctx, *req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dto.AmountsResponse{AmountA: out.A.Dec(), AmountB: out.B.Dec()})
}

func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.SwapRequestValidate(r)
	if err != nil {
		s.writeRequestError(w, code, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	res, err := s.svc.Swap(ctx, *req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dto.SwapResponse{
		Received: res.Received.Dec(),
		Gross:    res.Gross.Dec(),
		ToCaller: res.ToCaller.Dec(),
		ToVault:  res.ToVault.Dec(),
	})
}

func (s *Server) handleTransferShares(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.TransferSharesRequestValidate(r)
	if err != nil {
		s.writeRequestError(w, code, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	if err := s.svc.TransferShares(ctx, *req); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleApproveShares(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.ApproveSharesRequestValidate(r)
	if err != nil {
		s.writeRequestError(w, code, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	if err := s.svc.ApproveShares(ctx, *req); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTransferSharesFrom(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.TransferSharesFromRequestValidate(r)
	if err != nil {
		s.writeRequestError(w, code, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	if err := s.svc.TransferSharesFrom(ctx, *req); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
