package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) handleWalletBalance(w http.ResponseWriter, r *http.Request) {
	const handlerName = "wallet_balance"

	b, err := h.Wallet.GetBalance(r.Context(), callerID(r))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusOK, balanceResponse{Balance: b})
}

func (h *Handler) handleWalletTransactions(w http.ResponseWriter, r *http.Request) {
	const handlerName = "wallet_transactions"

	txs, err := h.Wallet.ListTransactions(r.Context(), callerID(r))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusOK, transactionsResponse{Transactions: txs})
}

func (h *Handler) handleWalletDeposit(w http.ResponseWriter, r *http.Request) {
	const handlerName = "wallet_deposit"

	var req amountRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	tx, err := h.Wallet.AddMoney(r.Context(), callerID(r), req.Amount)
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusCreated, transactionResponse{Transaction: tx})
}

func (h *Handler) handleWalletVerify(w http.ResponseWriter, r *http.Request) {
	const handlerName = "wallet_verify"

	var req verifyRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	if err := ValidateVerifyRequest(req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	tx, err := h.Wallet.VerifyPayment(r.Context(), callerID(r), req.Reference)
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusOK, transactionResponse{Transaction: tx})
}

func (h *Handler) handleWalletWithdraw(w http.ResponseWriter, r *http.Request) {
	const handlerName = "wallet_withdraw"

	var req amountRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	tx, err := h.Wallet.RequestWithdrawal(r.Context(), callerID(r), req.Amount)
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusCreated, transactionResponse{Transaction: tx})
}

// Admin

func (h *Handler) handleTransactionDelete(w http.ResponseWriter, r *http.Request) {
	const handlerName = "transaction_delete"

	if err := h.Wallet.DeleteTransaction(r.Context(), chi.URLParam(r, "transactionID")); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleWithdrawalComplete(w http.ResponseWriter, r *http.Request) {
	const handlerName = "withdrawal_complete"

	tx, err := h.Wallet.CompleteWithdrawal(r.Context(), chi.URLParam(r, "transactionID"))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusOK, transactionResponse{Transaction: tx})
}

func (h *Handler) handleWithdrawalFail(w http.ResponseWriter, r *http.Request) {
	const handlerName = "withdrawal_fail"

	tx, err := h.Wallet.FailWithdrawal(r.Context(), chi.URLParam(r, "transactionID"))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusOK, transactionResponse{Transaction: tx})
}
