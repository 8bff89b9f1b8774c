package webhooks

import (
	"context"
	"io"
	"net/http"

	"github.com/big-riz/HandcashIntegration/api/responses"
	pkgerrors "github.com/big-riz/HandcashIntegration/pkg/errors"
	"github.com/big-riz/HandcashIntegration/pkg/logger"
)

const maxWebhookBody = 1 << 20

type HandCashWebhookService interface {
	HandleDelivery(ctx context.Context, raw []byte) error
}

// HandCashWebhook handles payment status callbacks from HandCash. The
// payload itself carries the shared secret; verification lives in the
// service so a rejected delivery leaves no trace.
func HandCashWebhook(svc HandCashWebhookService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "webhook service unavailable"))
			return
		}

		payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request body"))
			return
		}

		if err := svc.HandleDelivery(ctx, payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "received"})
	}
}
