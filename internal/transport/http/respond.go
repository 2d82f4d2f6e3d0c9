package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/fleshka4/tradingpair/internal/apperrors"
	"github.com/fleshka4/tradingpair/internal/transport/http/dto"
)

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("response write error", zap.Error(err))
	}
}

// writeRequestError reports a request that failed parsing.
func (s *Server) writeRequestError(w http.ResponseWriter, code int, err error) {
	if code == 0 {
		code = http.StatusBadRequest
	}
	s.writeJSON(w, code, dto.ErrorResponse{Error: err.Error(), Kind: apperrors.KindInvalidArgument})
}

// writeError maps a service error to a status code.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	kind := apperrors.KindOf(err)
	code := statusFor(kind)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
		msg = "internal error"
	}
	s.writeJSON(w, code, dto.ErrorResponse{Error: msg, Kind: kind})
}

func statusFor(kind string) int {
	switch kind {
	case apperrors.KindSlippage:
		return http.StatusConflict
	case apperrors.KindArithmetic:
		return http.StatusUnprocessableEntity
	case apperrors.KindTransfer, apperrors.KindLedgerRead:
		return http.StatusBadGateway
	case apperrors.KindInsufficientFunds,
		apperrors.KindInsufficientAllowance,
		apperrors.KindZeroShares,
		apperrors.KindInsufficientLiquidity,
		apperrors.KindInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
