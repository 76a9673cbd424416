package payments

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/mbodj/fablab-bot/internal/domain/subscriptions"
)

type Handler struct {
	log  *slog.Logger
	subs *subscriptions.Repo
}

func NewHandler(log *slog.Logger, subs *subscriptions.Repo) *Handler {
	return &Handler{log: log, subs: subs}
}

// ServeHTTP emulates a paid renewal:
// /payments/pay?user=123 -> subscription reactivated for one more month.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userStr := r.URL.Query().Get("user")
	if userStr == "" {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("missing user parameter"))
		return
	}

	userID, err := strconv.ParseInt(userStr, 10, 64)
	if err != nil || userID <= 0 {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("invalid user parameter"))
		return
	}

	endDate := time.Now().AddDate(0, 1, 0)
	sub, err := h.subs.Renew(ctx, userID, endDate)
	if err != nil {
		h.log.Error("failed to renew subscription",
			"user_id", userID,
			"err", err,
		)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("failed to renew subscription"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = fmt.Fprintf(w,
		"<html><body><h1>Paiement accepté</h1><p>Abonnement %s renouvelé jusqu'au %s.</p></body></html>",
		sub.Type, sub.EndDate.Format("02/01/2006"),
	)
}
