package http

import (
	"net/http"

	"github.com/holiman/uint256"

	svcdto "github.com/fleshka4/tradingpair/internal/service/dto"
	"github.com/fleshka4/tradingpair/internal/transport/http/dto"
	"github.com/fleshka4/tradingpair/internal/transport/http/validate"
)

func (s *Server) writeAmount(w http.ResponseWriter, v *uint256.Int, err error) {
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dto.AmountResponse{Amount: v.Dec()})
}

func (s *Server) writeAmounts(w http.ResponseWriter, v svcdto.Amounts, err error) {
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, dto.AmountsResponse{AmountA: v.A.Dec(), AmountB: v.B.Dec()})
}

func (s *Server) handleWithdrawAmounts(w http.ResponseWriter, r *http.Request) {
	shares, code, err := validate.QueryAmount(r, "shares")
	if err != nil {
		s.writeRequestError(w, code, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	out, err := s.svc.WithdrawAmounts(ctx, shares)
	s.writeAmounts(w, out, err)
}

func (s *Server) handleExpectedShares(w http.ResponseWriter, r *http.Request) {
	depositA, code, err := validate.QueryAmount(r, "deposit_a")
	if err != nil {
		s.writeRequestError(w, code, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	out, err := s.svc.ExpectedShares(ctx, depositA)
	s.writeAmount(w, out, err)
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.QuoteRequestValidate(r)
	if err != nil {
		s.writeRequestError(w, code, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	out, err := s.svc.Price(ctx, *req)
	s.writeAmount(w, out, err)
}

func (s *Server) handlePriceImpact(w http.ResponseWriter, r *http.Request) {
	req, code, err := validate.QuoteRequestValidate(r)
	if err != nil {
		s.writeRequestError(w, code, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	out, err := s.svc.PriceImpact(ctx, *req)
	s.writeAmount(w, out, err)
}

func (s *Server) handlePriceForOne(w http.ResponseWriter, r *http.Request) {
	dir, code, err := validate.QueryDirection(r)
	if err != nil {
		s.writeRequestError(w, code, err)
		return
	}
	caller, err := validate.OptionalCaller(r)
	if err != nil {
		s.writeRequestError(w, http.StatusBadRequest, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	out, err := s.svc.PriceForOne(ctx, dir, caller)
	s.writeAmount(w, out, err)
}

func (s *Server) handleCurrentPrice(w http.ResponseWriter, r *http.Request) {
	caller, err := validate.OptionalCaller(r)
	if err != nil {
		s.writeRequestError(w, http.StatusBadRequest, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	out, err := s.svc.CurrentPrice(ctx, caller)
	s.writeAmount(w, out, err)
}

func (s *Server) handleReserves(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()

	out, err := s.svc.Reserves(ctx)
	s.writeAmounts(w, out, err)
}

func (s *Server) handleLockedAmounts(w http.ResponseWriter, r *http.Request) {
	account, code, err := validate.PathAddress(r, "account")
	if err != nil {
		s.writeRequestError(w, code, err)
		return
	}
	ctx, cancel := s.requestContext(r)
	defer cancel()

	out, err := s.svc.LockedAmounts(ctx, account)
	s.writeAmounts(w, out, err)
}

func (s *Server) handleTotalShares(w http.ResponseWriter, r *http.Request) {
	s.writeAmount(w, s.svc.TotalShares(r.Context()), nil)
}

func (s *Server) handleShareOf(w http.ResponseWriter, r *http.Request) {
	account, code, err := validate.PathAddress(r, "account")
	if err != nil {
		s.writeRequestError(w, code, err)
		return
	}
	s.writeAmount(w, s.svc.ShareOf(r.Context(), account), nil)
}

func (s *Server) handleShareAllowance(w http.ResponseWriter, r *http.Request) {
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
	s.writeAmount(w, s.svc.ShareAllowance(r.Context(), owner, spender), nil)
}

func (s *Server) handleTradeCount(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, dto.TradeCountResponse{TradeCount: s.svc.TradeCount(r.Context())})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	info := s.svc.Info(r.Context())
	s.writeJSON(w, http.StatusOK, dto.InfoResponse{
		Self:        info.Self.Hex(),
		FeeVault:    info.FeeVault.Hex(),
		AssetA:      info.AssetA.Hex(),
		AssetB:      info.AssetB.Hex(),
		BaseFeeRate: info.BaseFeeRate.Dec(),
	})
}
