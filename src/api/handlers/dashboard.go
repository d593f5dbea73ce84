package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"macrodash/src/schemas"
	"macrodash/src/utils"

	"github.com/go-chi/chi/v5"
)

// Any endpoint may trigger the first render, which is slow at full size.
const renderTimeout = 2 * time.Minute

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	png, err := h.Controller.DashboardPNG(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *Handler) RefreshDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	if err := h.Controller.Refresh(ctx); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, map[string]string{"status": "refreshed"}, http.StatusOK)
}

func (h *Handler) GetIndicator(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	indicator := schemas.Indicator(chi.URLParam(r, "indicator"))
	records, err := h.Controller.IndicatorSeries(ctx, indicator)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, records, http.StatusOK)
}

func (h *Handler) GetGrowth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	shares, err := h.Controller.GrowthShares(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, shares, http.StatusOK)
}
