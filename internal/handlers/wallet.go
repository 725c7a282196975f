package handlers

import (
	"errors"
	"log"

	"ridepool/internal/services/ledger"
	"ridepool/internal/services/settlement"
	"ridepool/internal/utils/pagination"
	"ridepool/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	ledger     ledger.Service
	settlement settlement.Service
}

func NewWalletHandler(ledgerSvc ledger.Service, settlementSvc settlement.Service) *WalletHandler {
	return &WalletHandler{
		ledger:     ledgerSvc,
		settlement: settlementSvc,
	}
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	wallet, err := h.ledger.GetWallet(c.Context(), claims.UserID)
	if err != nil {
		log.Printf("get wallet for user %d: %v", claims.UserID, err)
		return response.ServerError(c, "failed to get wallet")
	}

	return response.Success(c, "Wallet retrieved", fiber.Map{
		"wallet": wallet,
	})
}

func (h *WalletHandler) GetBalance(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	balance, err := h.ledger.GetBalance(c.Context(), claims.UserID)
	if err != nil {
		log.Printf("get balance for user %d: %v", claims.UserID, err)
		return response.ServerError(c, "failed to get balance")
	}

	return response.Success(c, "Balance retrieved", fiber.Map{
		"balance": balance,
	})
}

// WalletHistory lists the caller's ledger entries, newest first, with
// optional direction and reason filters.
func (h *WalletHandler) WalletHistory(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	p := pagination.ParseFromRequest(c)
	entries, total, err := h.ledger.History(c.Context(), claims.UserID, ledger.HistoryFilter{
		Direction: c.Query("direction"),
		Reason:    c.Query("reason"),
		Page:      p.Page,
		Limit:     p.Limit,
	})
	if err != nil {
		log.Printf("wallet history for user %d: %v", claims.UserID, err)
		return response.ServerError(c, "failed to get wallet history")
	}

	p.Total = total
	return c.JSON(pagination.Response(p, entries))
}

// Withdraw debits the caller's wallet toward an external bank payout.
func (h *WalletHandler) Withdraw(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input struct {
		Amount int64                  `json:"amount"`
		Bank   settlement.BankDetails `json:"bank_details"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}
	if input.Bank.AccountNumber == "" || input.Bank.IFSCCode == "" {
		return response.BadRequest(c, "bank account number and IFSC code are required")
	}

	receipt, err := h.settlement.Withdraw(c.Context(), claims.UserID, input.Amount, input.Bank)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidAmount):
			return response.BadRequest(c, "amount must be greater than 0")
		case errors.Is(err, settlement.ErrKYCRequired):
			return response.Forbidden(c, "KYC verification required for withdrawals")
		case errors.Is(err, ledger.ErrInsufficientFunds):
			return response.UnprocessableEntity(c, "insufficient balance")
		case errors.Is(err, ledger.ErrWalletDeactivated):
			return response.Forbidden(c, "wallet is deactivated")
		}
		log.Printf("withdraw for user %d: %v", claims.UserID, err)
		return response.ServerError(c, "failed to process withdrawal")
	}

	return response.Success(c, "Withdrawal initiated", receipt)
}
